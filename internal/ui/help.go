package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

type helpSection struct {
	title string
	rows  [][]string // Each row: [keys, description]
}

// getHelpSections derives the help text from the bindings themselves.
func getHelpSections(keys KeyMap) []helpSection {
	return []helpSection{
		{
			title: "NAVIGATION",
			rows: [][]string{
				{keys.Up.Help().Key, keys.Up.Help().Desc},
				{keys.Home.Help().Key, keys.Home.Help().Desc},
				{keys.End.Help().Key, keys.End.Help().Desc},
			},
		},
		{
			title: "ACTIONS",
			rows: [][]string{
				{keys.Refresh.Help().Key, keys.Refresh.Help().Desc},
				{keys.Reset.Help().Key, keys.Reset.Help().Desc},
				{keys.Copy.Help().Key, keys.Copy.Help().Desc},
				{keys.Theme.Help().Key, keys.Theme.Help().Desc},
				{keys.Quit.Help().Key, keys.Quit.Help().Desc},
			},
		},
	}
}

// renderHelpOverlay creates the centered help modal.
func renderHelpOverlay(keys KeyMap, width, height int) string {
	sections := getHelpSections(keys)

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		renderHelpSectionTable(sections[0]),
		"    ",
		renderHelpSectionTable(sections[1]),
	)

	dividerWidth := lipgloss.Width(columns)
	if dividerWidth < 40 {
		dividerWidth = 40
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		styleHelpTitle().Render("✦ CUTETIME HELP ✦"),
		styleMuted().Render(strings.Repeat("─", dividerWidth)),
		"",
		columns,
		"",
		styleMuted().Italic(true).Render("Press ? or Esc to close"),
	)

	return lipgloss.Place(width, height,
		lipgloss.Center, lipgloss.Center,
		styleHelpOverlay().Render(content),
		lipgloss.WithWhitespaceChars(" "),
	)
}

// renderHelpSectionTable renders a single help section using lipgloss/table.
func renderHelpSectionTable(section helpSection) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return styleHelpKey().Width(14)
			}
			return styleHelpDesc()
		}).
		Rows(section.rows...)

	header := styleHelpKey().Render(section.title)
	underline := styleMuted().Render(strings.Repeat("─", len(section.title)))

	// Hidden border adds an empty top row.
	tableStr := strings.TrimPrefix(t.String(), "\n")

	return lipgloss.JoinVertical(lipgloss.Left, header, underline, tableStr)
}
