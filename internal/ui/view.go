package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	maxPhraseWidth = 24
	chromeHeight   = 3 // header, blank line, footer
)

// View renders the header, the item list and the footer.
func (m *App) View() string {
	if m.showHelp {
		return renderHelpOverlay(m.keys, m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(padLinesToWidth(m.renderList(), m.width))
	b.WriteString("\n")
	if m.toast != "" {
		b.WriteString(styleSuccessToast().Render(m.toast))
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter())
	return fillBackground(b.String())
}

func (m *App) renderHeader() string {
	title := "cutetime"
	if m.version != "" {
		title += " " + m.version
	}
	count := fmt.Sprintf("%d item(s)", len(m.items))
	header := styleAppHeader().Render(title)
	spacing := m.width - lipgloss.Width(header) - ansi.StringWidth(count)
	if spacing < 1 {
		spacing = 1
	}
	return header + strings.Repeat(" ", spacing) + styleMuted().Render(count)
}

func (m *App) listHeight() int {
	h := m.height - chromeHeight
	if h < 1 {
		h = 1
	}
	return h
}

func (m *App) renderList() string {
	if len(m.items) == 0 {
		return styleMuted().Render("Nothing tracked yet. Add one with `cutetime add TEXT`.")
	}

	idWidth, phraseWidth := m.columnWidths()
	end := m.topLine + m.listHeight()
	if end > len(m.items) {
		end = len(m.items)
	}

	lines := make([]string, 0, end-m.topLine)
	for i := m.topLine; i < end; i++ {
		lines = append(lines, m.renderRow(i, idWidth, phraseWidth))
	}
	return strings.Join(lines, "\n")
}

func (m *App) columnWidths() (idWidth, phraseWidth int) {
	for _, item := range m.items {
		if w := len(fmt.Sprintf("#%d", item.ID)); w > idWidth {
			idWidth = w
		}
		if w := ansi.StringWidth(item.Phrase); w > phraseWidth {
			phraseWidth = w
		}
	}
	if phraseWidth > maxPhraseWidth {
		phraseWidth = maxPhraseWidth
	}
	return idWidth, phraseWidth
}

func (m *App) renderRow(i, idWidth, phraseWidth int) string {
	item := m.items[i]
	id := padRight(fmt.Sprintf("#%d", item.ID), idWidth)
	phrase := padRight(truncateToWidth(item.Phrase, phraseWidth), phraseWidth)

	titleWidth := m.width - idWidth - phraseWidth - 4
	title := truncateToWidth(item.Title(), titleWidth)

	if i == m.cursor {
		line := padRight(strings.Join([]string{id, phrase, title}, "  "), m.width)
		return styleSelected().Render(line)
	}
	return styleID().Render(id) + "  " + stylePhrase().Render(phrase) + "  " + styleTitle().Render(title)
}
