package ui

import (
	"context"
	"fmt"

	"cutetime/internal/ui/theme"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles Bubble Tea messages.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil
	case tickMsg:
		m.refresh()
		return m, scheduleTick(m.interval)
	case toastTickMsg:
		if m.toast == "" {
			return m, nil
		}
		if m.clock.Since(m.toastStart) >= toastDuration {
			m.toast = ""
			return m, nil
		}
		return m, scheduleToastTick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Escape):
			m.showHelp = false
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
		m.clampScroll()
	case key.Matches(msg, m.keys.End):
		m.cursor = len(m.items) - 1
		m.clampScroll()
	case key.Matches(msg, m.keys.Refresh):
		m.refresh()
	case key.Matches(msg, m.keys.Reset):
		return m, m.handleResetKey()
	case key.Matches(msg, m.keys.Copy):
		return m, m.handleCopyKey()
	case key.Matches(msg, m.keys.Theme):
		return m, m.handleThemeKey()
	}
	return m, nil
}

// handleThemeKey switches to the next palette and persists the choice.
func (m *App) handleThemeKey() tea.Cmd {
	name := theme.Cycle()
	if m.saveTheme != nil {
		if err := m.saveTheme(name); err != nil {
			log.Logf("save theme %q: %v", name, err)
			m.lastError = "theme not saved: " + err.Error()
		}
	}
	return m.showToast("Theme: " + name)
}

// handleCopyKey copies the selected item's phrase to the clipboard.
func (m *App) handleCopyKey() tea.Cmd {
	item := m.selected()
	if item == nil || item.Phrase == "" {
		return nil
	}
	if err := writeClipboard(item.Phrase); err != nil {
		m.lastError = "copy failed: " + err.Error()
		return nil
	}
	return m.showToast(fmt.Sprintf("Copied '%s' to clipboard.", item.Phrase))
}

// handleResetKey forgets the selected item's origin and re-renders so the
// next origin is picked from its display text.
func (m *App) handleResetKey() tea.Cmd {
	item := m.selected()
	if item == nil {
		return nil
	}
	if m.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := m.store.ClearOrigin(ctx, item.ID); err != nil {
			m.lastError = "reset failed: " + err.Error()
			return nil
		}
	}
	item.ClearOrigin()
	m.refresh()
	return m.showToast(fmt.Sprintf("Reset #%d", item.ID))
}

func (m *App) moveCursor(delta int) {
	if len(m.items) == 0 {
		return
	}
	m.cursor += delta
	m.clampScroll()
}

// clampScroll keeps the cursor in range and visible.
func (m *App) clampScroll() {
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	rows := m.listHeight()
	if m.cursor < m.topLine {
		m.topLine = m.cursor
	}
	if m.cursor >= m.topLine+rows {
		m.topLine = m.cursor - rows + 1
	}
	if m.topLine < 0 {
		m.topLine = 0
	}
}
