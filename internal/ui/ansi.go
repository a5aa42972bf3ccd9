package ui

import (
	"strings"

	"cutetime/internal/ui/theme"
)

// fillBackground replaces ANSI reset codes with sequences that preserve the theme background.
func fillBackground(s string) string {
	bgSeq := theme.Current().BackgroundANSI()
	if bgSeq == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\x1b[0m", "\x1b[0m"+bgSeq)
	s = strings.ReplaceAll(s, "\x1b[49m", bgSeq)
	return s
}
