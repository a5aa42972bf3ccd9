// Package ui implements the interactive watch view: a live list of stored
// items with their relative-time phrases.
package ui

import (
	"context"
	"time"

	"cutetime/internal/cutetime"
	"cutetime/internal/debug"
	"cutetime/internal/store"
	"cutetime/internal/timeparse"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
)

var log = debug.Scope("ui")

const (
	storeTimeout  = 2 * time.Second
	toastDuration = 2 * time.Second
)

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

// OriginStore persists what the view changes.
type OriginStore interface {
	SaveOrigins(ctx context.Context, items []*store.Item) (int, error)
	ClearOrigin(ctx context.Context, id int64) error
}

// Config configures the watch view.
type Config struct {
	Cutetime cutetime.Config
	Items    []*store.Item
	Store    OriginStore
	Version  string

	// Clock and Parser default to the wall clock and local-time parsing.
	Clock  clockwork.Clock
	Parser *timeparse.Parser

	// SaveTheme persists the palette picked with the theme key. Optional.
	SaveTheme func(name string) error
}

// App implements the Bubble Tea model for the watch view.
type App struct {
	tracker  *cutetime.Tracker
	items    []*store.Item
	store    OriginStore
	clock    clockwork.Clock
	keys     KeyMap
	version  string
	interval time.Duration

	saveTheme func(name string) error

	cursor  int
	topLine int
	width   int
	height  int

	showHelp   bool
	lastError  string
	lastUpdate time.Time

	toast      string
	toastStart time.Time
}

// NewApp builds the view and renders every item once.
func NewApp(cfg Config) (*App, error) {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	parser := cfg.Parser
	if parser == nil {
		parser = timeparse.New(nil)
	}

	tracked := make([]cutetime.Item, len(cfg.Items))
	for i, item := range cfg.Items {
		tracked[i] = item
	}
	tracker, err := cutetime.New(cfg.Cutetime, tracked,
		cutetime.WithClock(clock),
		cutetime.WithParser(parser),
	)
	if err != nil {
		return nil, err
	}

	m := &App{
		tracker:   tracker,
		items:     cfg.Items,
		store:     cfg.Store,
		clock:     clock,
		keys:      DefaultKeyMap(),
		version:   cfg.Version,
		interval:  cfg.Cutetime.RefreshInterval,
		saveTheme: cfg.SaveTheme,
		width:     80,
		height:    24,
	}
	m.refresh()
	return m, nil
}

// Init starts the refresh ticker when an interval is configured.
func (m *App) Init() tea.Cmd {
	return scheduleTick(m.interval)
}

// Items returns the items shown by the view.
func (m *App) Items() []*store.Item {
	return m.items
}

// refresh re-renders every phrase against one "now" and persists any origin
// recorded along the way.
func (m *App) refresh() {
	m.tracker.Update()
	m.lastUpdate = m.clock.Now()
	m.persist()
}

func (m *App) persist() {
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	n, err := m.store.SaveOrigins(ctx, m.items)
	if err != nil {
		m.lastError = "save failed: " + err.Error()
		log.Logf("save origins: %v", err)
		return
	}
	if n > 0 {
		log.Logf("persisted %d origin(s)", n)
	}
	m.lastError = ""
}

func (m *App) selected() *store.Item {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return m.items[m.cursor]
}

func (m *App) showToast(text string) tea.Cmd {
	m.toast = text
	m.toastStart = m.clock.Now()
	return scheduleToastTick()
}
