// Package theme provides the color palettes for the watch view.
package theme

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette is a named set of semantic colors. Every color adapts to light and
// dark terminals.
type Palette struct {
	Name string

	Primary   lipgloss.AdaptiveColor // header background, focused borders
	Secondary lipgloss.AdaptiveColor // phrase column
	Accent    lipgloss.AdaptiveColor // ids, titles

	Error   lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor

	Text      lipgloss.AdaptiveColor
	TextMuted lipgloss.AdaptiveColor

	Selection  lipgloss.AdaptiveColor // selected row background
	Background lipgloss.AdaptiveColor
	Border     lipgloss.AdaptiveColor
}

// BackgroundANSI returns the escape sequence that sets the palette background
// for the current terminal color profile.
func (p Palette) BackgroundANSI() string {
	hex := p.Background.Dark
	if !lipgloss.HasDarkBackground() {
		hex = p.Background.Light
	}
	seq := lipgloss.ColorProfile().Color(hex).Sequence(true)
	if seq == "" {
		return ""
	}
	return termenv.CSI + seq + "m"
}

var registry = struct {
	mu      sync.RWMutex
	byName  map[string]Palette
	current string
}{byName: make(map[string]Palette)}

// Register adds p to the registry. The first registered palette becomes the
// default.
func Register(p Palette) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.byName[p.Name] = p
	if registry.current == "" {
		registry.current = p.Name
	}
}

// Set switches to a registered palette by name and reports whether it exists.
func Set(name string) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, ok := registry.byName[name]; !ok {
		return false
	}
	registry.current = name
	return true
}

// Current returns the active palette.
func Current() Palette {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.byName[registry.current]
}

// CurrentName returns the name of the active palette.
func CurrentName() string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.current
}

// Available returns the registered palette names in sorted order.
func Available() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return sortedNamesLocked()
}

// Cycle switches to the next palette in sorted order and returns its name.
func Cycle() string {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	names := sortedNamesLocked()
	if len(names) == 0 {
		return ""
	}
	next := 0
	for i, name := range names {
		if name == registry.current {
			next = (i + 1) % len(names)
			break
		}
	}
	registry.current = names[next]
	return registry.current
}

func sortedNamesLocked() []string {
	names := make([]string, 0, len(registry.byName))
	for name := range registry.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
