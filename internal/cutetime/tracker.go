package cutetime

import (
	"sync"
	"time"

	"cutetime/internal/cuteness"
	"cutetime/internal/timeparse"

	"github.com/jonboulle/clockwork"
)

// Tracker is the handle for a bound set of items.
type Tracker struct {
	clock  clockwork.Clock
	parser *timeparse.Parser
	hook   func(now time.Time)

	// updateMu serialises Update between the trigger and callers.
	updateMu sync.Mutex

	mu       sync.Mutex
	cfg      Config
	resolver *cuteness.Resolver
	items    []Item
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c clockwork.Clock) Option {
	return func(t *Tracker) {
		t.clock = c
	}
}

// WithParser sets the parser used for origins and display text.
func WithParser(p *timeparse.Parser) Option {
	return func(t *Tracker) {
		t.parser = p
	}
}

// WithUpdateHook registers fn to run after every Update, including the ones
// fired by the trigger. fn must not call Stop.
func WithUpdateHook(fn func(now time.Time)) Option {
	return func(t *Tracker) {
		t.hook = fn
	}
}

// New validates cfg and returns an idle tracker over items.
func New(cfg Config, items []Item, opts ...Option) (*Tracker, error) {
	resolver, err := cuteness.NewResolver(cfg.Ranges)
	if err != nil {
		return nil, err
	}
	t := &Tracker{
		cfg:      MergeOptions(cfg, Options{}),
		resolver: resolver,
		items:    append([]Item(nil), items...),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.clock == nil {
		t.clock = clockwork.NewRealClock()
	}
	if t.parser == nil {
		t.parser = timeparse.New(nil)
	}
	return t, nil
}

// Bind creates a tracker, renders every item once, and starts the trigger
// when cfg.RefreshInterval is positive.
func Bind(cfg Config, items []Item, opts ...Option) (*Tracker, error) {
	t, err := New(cfg, items, opts...)
	if err != nil {
		return nil, err
	}
	t.Update()
	t.Start()
	return t, nil
}

// Config returns a copy of the active configuration.
func (t *Tracker) Config() Config {
	t.mu.Lock()
	defer t.mu.Unlock()
	return MergeOptions(t.cfg, Options{})
}

// SetConfig validates and swaps in cfg. A running trigger is restarted when
// the interval changes, and stopped when it is no longer positive. The swap
// and the restart happen under one lock, so a concurrent Stop either sees the
// new trigger or prevents it from starting.
func (t *Tracker) SetConfig(cfg Config) error {
	resolver, err := cuteness.NewResolver(cfg.Ranges)
	if err != nil {
		return err
	}
	t.mu.Lock()
	var oldStop, oldDone chan struct{}
	if t.stopCh != nil && t.cfg.RefreshInterval != cfg.RefreshInterval {
		oldStop, oldDone = t.stopCh, t.doneCh
		t.stopCh, t.doneCh = nil, nil
	}
	t.cfg = MergeOptions(cfg, Options{})
	t.resolver = resolver
	if oldStop != nil {
		t.startLocked()
	}
	t.mu.Unlock()

	if oldStop != nil {
		close(oldStop)
		<-oldDone
		log.Logf("refresh trigger restarted")
	}
	return nil
}

// Items returns the tracked items.
func (t *Tracker) Items() []Item {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Item(nil), t.items...)
}

// SetItems replaces the tracked items.
func (t *Tracker) SetItems(items []Item) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append([]Item(nil), items...)
}

// Update resolves every item against a single "now" and sets its phrase.
func (t *Tracker) Update() {
	t.updateMu.Lock()
	now := t.clock.Now()

	t.mu.Lock()
	resolver := t.resolver
	items := append([]Item(nil), t.items...)
	t.mu.Unlock()

	nowMs := now.UnixMilli()
	for _, item := range items {
		origin := ResolveOrigin(item, t.parser, now)
		item.SetPhrase(resolver.Resolve(nowMs - origin))
	}
	t.updateMu.Unlock()

	if t.hook != nil {
		t.hook(now)
	}
}

// Start begins periodic updates. It does nothing when the trigger is
// already running or the interval is not positive.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.startLocked()
}

func (t *Tracker) startLocked() {
	interval := t.cfg.RefreshInterval
	if t.stopCh != nil || interval <= 0 {
		return
	}
	t.stopCh = make(chan struct{})
	t.doneCh = make(chan struct{})
	ticker := t.clock.NewTicker(interval)
	go t.loop(ticker, t.stopCh, t.doneCh)
	log.Logf("refresh trigger started every %s", interval)
}

// Stop cancels periodic updates and waits for the trigger goroutine to exit,
// so no scheduled update runs after it returns. It does nothing when the
// trigger is not running.
func (t *Tracker) Stop() {
	t.mu.Lock()
	stopCh, doneCh := t.stopCh, t.doneCh
	t.stopCh, t.doneCh = nil, nil
	t.mu.Unlock()

	if stopCh == nil {
		return
	}
	close(stopCh)
	<-doneCh
	log.Logf("refresh trigger stopped")
}

// Running reports whether the periodic trigger is active.
func (t *Tracker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopCh != nil
}

func (t *Tracker) loop(ticker clockwork.Ticker, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.Chan():
			select {
			case <-stopCh:
				return
			default:
			}
			t.Update()
		}
	}
}
