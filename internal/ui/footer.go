package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// footerHint defines a key hint for the footer bar.
// These are intentionally shorter than the KeyMap help text.
type footerHint struct {
	key  string
	desc string
}

var footerHints = []footerHint{
	{"↑↓", "Navigate"},
	{"y", "Copy"},
	{"r", "Refresh"},
	{"t", "Theme"},
	{"?", "Help"},
	{"q", "Quit"},
}

// renderFooter renders the footer bar with pill-style key hints and the
// status text right-aligned.
func (m *App) renderFooter() string {
	status := m.statusText()
	statusWidth := lipgloss.Width(status)
	availableWidth := m.width - statusWidth - 4

	hints := trimHintsToFit(footerHints, availableWidth)

	var parts []string
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	left := strings.Join(parts, "  ")

	spacing := m.width - lipgloss.Width(left) - statusWidth
	if spacing < 2 {
		spacing = 2
	}
	return left + strings.Repeat(" ", spacing) + status
}

func (m *App) statusText() string {
	if m.lastError != "" {
		return styleErrorIndicator().Render("⚠ " + m.lastError)
	}
	if m.lastUpdate.IsZero() {
		return ""
	}
	return styleMuted().Render("updated " + m.lastUpdate.Format("15:04:05"))
}

// keyPill renders a single key hint as a pill with description.
func keyPill(key, desc string) string {
	return styleKeyPill().Render(" "+key+" ") + " " + styleMuted().Render(desc)
}

// trimHintsToFit drops hints from the end until the rest fit.
func trimHintsToFit(hints []footerHint, availableWidth int) []footerHint {
	for len(hints) > 0 && renderHintsWidth(hints) > availableWidth {
		hints = hints[:len(hints)-1]
	}
	return hints
}

func renderHintsWidth(hints []footerHint) int {
	var parts []string
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	return lipgloss.Width(strings.Join(parts, "  "))
}
