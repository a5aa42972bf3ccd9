package theme

import "github.com/charmbracelet/lipgloss"

func init() {
	// dracula registers first and is the default.
	Register(dracula)
	Register(nord)
	Register(solarized)
	Register(tokyonight)
}

func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// https://draculatheme.com/contribute
var dracula = Palette{
	Name:       "dracula",
	Primary:    adaptive("#7e57c2", "#bd93f9"),
	Secondary:  adaptive("#0097a7", "#8be9fd"),
	Accent:     adaptive("#f9a825", "#f1fa8c"),
	Error:      adaptive("#d32f2f", "#ff5555"),
	Success:    adaptive("#388e3c", "#50fa7b"),
	Text:       adaptive("#282a36", "#f8f8f2"),
	TextMuted:  adaptive("#6272a4", "#6272a4"),
	Selection:  adaptive("#e0e0e0", "#44475a"),
	Background: adaptive("#f8f8f2", "#282a36"),
	Border:     adaptive("#bdbdbd", "#44475a"),
}

// https://www.nordtheme.com/docs/colors-and-palettes
var nord = Palette{
	Name:       "nord",
	Primary:    adaptive("#5E81AC", "#88C0D0"),
	Secondary:  adaptive("#81A1C1", "#81A1C1"),
	Accent:     adaptive("#D08770", "#EBCB8B"),
	Error:      adaptive("#BF616A", "#BF616A"),
	Success:    adaptive("#A3BE8C", "#A3BE8C"),
	Text:       adaptive("#2E3440", "#ECEFF4"),
	TextMuted:  adaptive("#4C566A", "#D8DEE9"),
	Selection:  adaptive("#D8DEE9", "#434C5E"),
	Background: adaptive("#ECEFF4", "#2E3440"),
	Border:     adaptive("#D8DEE9", "#4C566A"),
}

// https://ethanschoonover.com/solarized/
var solarized = Palette{
	Name:       "solarized",
	Primary:    adaptive("#268bd2", "#268bd2"),
	Secondary:  adaptive("#2aa198", "#2aa198"),
	Accent:     adaptive("#b58900", "#b58900"),
	Error:      adaptive("#dc322f", "#dc322f"),
	Success:    adaptive("#859900", "#859900"),
	Text:       adaptive("#657b83", "#839496"),
	TextMuted:  adaptive("#93a1a1", "#586e75"),
	Selection:  adaptive("#eee8d5", "#073642"),
	Background: adaptive("#fdf6e3", "#002b36"),
	Border:     adaptive("#eee8d5", "#073642"),
}

var tokyonight = Palette{
	Name:       "tokyonight",
	Primary:    adaptive("#2e7de9", "#82aaff"),
	Secondary:  adaptive("#9854f1", "#c099ff"),
	Accent:     adaptive("#b15c00", "#ff966c"),
	Error:      adaptive("#f52a65", "#ff757f"),
	Success:    adaptive("#587539", "#c3e88d"),
	Text:       adaptive("#3760bf", "#c8d3f5"),
	TextMuted:  adaptive("#848cb5", "#636da6"),
	Selection:  adaptive("#b7c1e3", "#2d3f76"),
	Background: adaptive("#e1e2e7", "#222436"),
	Border:     adaptive("#b4b5b9", "#3b4261"),
}
