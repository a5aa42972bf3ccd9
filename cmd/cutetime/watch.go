package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"cutetime/internal/config"
	"cutetime/internal/cutetime"
	"cutetime/internal/debug"
	"cutetime/internal/store"
	"cutetime/internal/ui"
	"cutetime/internal/ui/theme"

	tea "github.com/charmbracelet/bubbletea"
)

var log = debug.Scope("watch")

const saveTimeout = 2 * time.Second

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

// newProgram is swapped in tests.
var newProgram programFactory = func(app *ui.App) programRunner {
	return tea.NewProgram(app, tea.WithAltScreen())
}

func watchCommand(c *cli, args []string) error {
	fs := newFlagSet(c, "watch", "watch [--plain] [--refresh-interval-ms N]")
	plain := fs.Bool("plain", false, "print updates as lines instead of the interactive view")
	intervalMs := fs.Int("refresh-interval-ms", -1, "refresh period in milliseconds; <= 0 renders once (plain) or never refreshes (interactive)")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}

	cfg, err := trackerConfig()
	if err != nil {
		return err
	}
	if fs.Changed("refresh-interval-ms") {
		cfg.RefreshInterval = 0
		if *intervalMs > 0 {
			cfg.RefreshInterval = time.Duration(*intervalMs) * time.Millisecond
		}
	}

	s, err := openStore(c)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.Close()
	}()
	items, err := s.List(c.ctx)
	if err != nil {
		return err
	}

	if *plain {
		return watchPlain(c, s, cfg, items)
	}
	applyTheme(c)
	return runProgram(ui.Config{
		Cutetime: cfg,
		Items:    items,
		Store:    s,
		Version:  Version,
		Clock:    c.clock,
		SaveTheme: func(name string) error {
			return config.SaveValue(config.KeyTheme, name)
		},
	}, ui.NewApp, newProgram)
}

// applyTheme switches to the configured palette, keeping the current one
// when the name is unknown.
func applyTheme(c *cli) {
	name := config.GetString(config.KeyTheme)
	if name == "" || theme.Set(name) {
		return
	}
	_, _ = fmt.Fprintf(c.errOut, "Warning: unknown theme %q (available: %s)\n",
		name, strings.Join(theme.Available(), ", "))
}

func runProgram(cfg ui.Config, builder func(ui.Config) (*ui.App, error), factory programFactory) error {
	app, err := builder(cfg)
	if err != nil {
		return fmt.Errorf("initialize UI: %w", err)
	}
	if factory == nil {
		return fmt.Errorf("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}

// watchPlain prints every update as a block of lines until c.ctx is done.
// Without a refresh interval it prints once and returns.
func watchPlain(c *cli, s *store.Store, cfg cutetime.Config, items []*store.Item) error {
	tracked := make([]cutetime.Item, len(items))
	for i, item := range items {
		tracked[i] = item
	}

	var (
		mu      sync.Mutex
		saveErr error
	)
	hook := func(now time.Time) {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		_, err := s.SaveOrigins(ctx, items)

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			saveErr = err
			log.Logf("save origins: %v", err)
		}
		printUpdate(c.out, now, items)
	}

	tracker, err := cutetime.Bind(cfg, tracked,
		cutetime.WithClock(c.clock),
		cutetime.WithUpdateHook(hook),
	)
	if err != nil {
		return err
	}
	if tracker.Running() {
		<-c.ctx.Done()
		tracker.Stop()
	}

	mu.Lock()
	defer mu.Unlock()
	return saveErr
}

func printUpdate(w io.Writer, now time.Time, items []*store.Item) {
	_, _ = fmt.Fprintf(w, "[%s]\n", now.Format("15:04:05"))
	if len(items) == 0 {
		_, _ = fmt.Fprintln(w, "  nothing tracked")
		return
	}
	for _, item := range items {
		_, _ = fmt.Fprintf(w, "  #%d\t%s\t%s\n", item.ID, item.Phrase, item.Title())
	}
}
