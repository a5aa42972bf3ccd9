package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "…"

// truncateToWidth cuts s to at most width cells, marking the cut with an
// ellipsis. Escape sequences are preserved and do not count toward width.
func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, ellipsis)
}

// padRight pads s with spaces until it spans width cells.
func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// padLinesToWidth ensures every line in the content is padded to the provided width.
func padLinesToWidth(content string, width int) string {
	if width <= 0 || content == "" {
		return content
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = padLineToWidth(line, width)
	}
	return strings.Join(lines, "\n")
}

// padLineToWidth pads a single line with the base background so it reaches the provided width.
func padLineToWidth(line string, width int) string {
	if width <= 0 {
		return line
	}
	lineWidth := ansi.StringWidth(line)
	if lineWidth >= width {
		return line
	}
	return line + baseStyle().Render(strings.Repeat(" ", width-lineWidth))
}
