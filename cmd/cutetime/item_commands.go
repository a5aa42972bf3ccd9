package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"cutetime/internal/config"
	"cutetime/internal/cutetime"
	appErrors "cutetime/internal/errors"
	"cutetime/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

func addCommand(c *cli, args []string) error {
	fs := newFlagSet(c, "add", "add [--label LABEL] TEXT...")
	label := fs.String("label", "", "short name shown instead of the text")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}
	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "" {
		return usageError(fs)
	}

	s, err := openStore(c)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.Close()
	}()

	item, err := s.Add(c.ctx, *label, text)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(c.out, "Added #%d\n", item.ID)
	return nil
}

type listEntry struct {
	ID        int64  `json:"id"`
	Label     string `json:"label,omitempty"`
	Text      string `json:"text"`
	Origin    string `json:"origin,omitempty"`
	Phrase    string `json:"phrase"`
	CreatedAt string `json:"created_at"`
}

func listCommand(c *cli, args []string) error {
	fs := newFlagSet(c, "list", "list [--json]")
	asJSON := fs.Bool("json", false, "print items as JSON")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}

	s, err := openStore(c)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.Close()
	}()

	items, err := renderStoredItems(c, s)
	if err != nil {
		return err
	}

	if jsonOutput(*asJSON) {
		entries := make([]listEntry, 0, len(items))
		for _, item := range items {
			origin, _ := item.Origin()
			entries = append(entries, listEntry{
				ID:        item.ID,
				Label:     item.Label,
				Text:      item.DisplayText,
				Origin:    origin,
				Phrase:    item.Phrase,
				CreatedAt: item.CreatedAt,
			})
		}
		return writeJSON(c.out, entries)
	}

	if len(items) == 0 {
		_, _ = fmt.Fprintln(c.out, "Nothing tracked yet.")
		return nil
	}
	_, _ = fmt.Fprintln(c.out, itemsTable(items))
	_, _ = fmt.Fprintln(c.out, storeSummary(s.Path(), len(items)))
	return nil
}

// renderStoredItems loads every item, renders its phrase once and
// persists origins recorded on the way.
func renderStoredItems(c *cli, s *store.Store) ([]*store.Item, error) {
	items, err := s.List(c.ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := trackerConfig()
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval = 0

	tracked := make([]cutetime.Item, len(items))
	for i, item := range items {
		tracked[i] = item
	}
	if _, err := cutetime.Bind(cfg, tracked, cutetime.WithClock(c.clock)); err != nil {
		return nil, err
	}
	if _, err := s.SaveOrigins(c.ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func itemsTable(items []*store.Item) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{fmt.Sprintf("#%d", item.ID), item.Phrase, item.Title()})
	}
	header := lipgloss.NewStyle().Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("ID", "WHEN", "ITEM").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Rows(rows...).
		String()
}

func storeSummary(path string, count int) string {
	summary := fmt.Sprintf("%d item(s) in %s", count, path)
	if info, err := os.Stat(path); err == nil {
		summary += fmt.Sprintf(" (%s)", humanize.Bytes(uint64(info.Size())))
	}
	return summary
}

func resetCommand(c *cli, args []string) error {
	return withItemID(c, "reset", args, func(s *store.Store, id int64) error {
		if err := s.ClearOrigin(c.ctx, id); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(c.out, "Reset #%d\n", id)
		return nil
	})
}

func removeCommand(c *cli, args []string) error {
	return withItemID(c, "rm", args, func(s *store.Store, id int64) error {
		if err := s.Delete(c.ctx, id); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(c.out, "Removed #%d\n", id)
		return nil
	})
}

func withItemID(c *cli, name string, args []string, fn func(*store.Store, int64) error) error {
	fs := newFlagSet(c, name, name+" ID")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageError(fs)
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(fs.Arg(0), "#"), 10, 64)
	if err != nil {
		return appErrors.New(appErrors.CodeParseFailed, fmt.Sprintf("invalid item id %q", fs.Arg(0)), err)
	}

	s, err := openStore(c)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.Close()
	}()
	return fn(s, id)
}

func setCommand(c *cli, args []string) error {
	fs := newFlagSet(c, "set", "set KEY VALUE")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return usageError(fs)
	}
	key, raw := fs.Arg(0), fs.Arg(1)
	if key == config.KeyRanges {
		return appErrors.New(appErrors.CodeConfigurationError, "ranges must be edited in the config file", nil)
	}

	var value any = raw
	if n, err := strconv.Atoi(raw); err == nil {
		value = n
	} else if b, err := strconv.ParseBool(raw); err == nil {
		value = b
	}
	if err := config.SaveValue(key, value); err != nil {
		return appErrors.New(appErrors.CodeConfigurationError, "save config", err)
	}
	_, _ = fmt.Fprintf(c.out, "%s = %v\n", key, value)
	return nil
}
