package cutetime

import (
	"time"

	"cutetime/internal/debug"
	"cutetime/internal/timeparse"
)

var log = debug.Scope("cutetime")

// Item is a display element whose relative time is kept fresh.
type Item interface {
	// Origin returns the recorded origin string, if one was recorded.
	Origin() (string, bool)
	// SetOrigin records the origin all later updates measure from.
	SetOrigin(origin string)
	// Text is the fallback display text, read when no usable origin exists.
	Text() string
	// SetPhrase receives the rendered phrase.
	SetPhrase(phrase string)
}

// ResolveOrigin picks the instant item is measured from: its recorded origin
// if that parses, else its display text if that parses, else now. The chosen
// string is always written back so repeated updates share one baseline.
func ResolveOrigin(item Item, parser *timeparse.Parser, now time.Time) int64 {
	if origin, ok := item.Origin(); ok {
		if ms, ok := parser.Parse(origin); ok {
			item.SetOrigin(origin)
			return ms
		}
		log.Logf("recorded origin %q does not parse", origin)
	}

	text := item.Text()
	if ms, ok := parser.Parse(text); ok {
		item.SetOrigin(text)
		return ms
	}

	ms := now.UnixMilli()
	item.SetOrigin(timeparse.FormatCanonical(ms))
	return ms
}

// TextItem is an in-memory Item.
type TextItem struct {
	DisplayText  string
	RecordedFrom string
	HasOrigin    bool
	Phrase       string
}

// NewTextItem returns an item with display text and no recorded origin.
func NewTextItem(text string) *TextItem {
	return &TextItem{DisplayText: text}
}

func (i *TextItem) Origin() (string, bool) { return i.RecordedFrom, i.HasOrigin }

func (i *TextItem) SetOrigin(origin string) {
	i.RecordedFrom = origin
	i.HasOrigin = true
}

func (i *TextItem) Text() string { return i.DisplayText }

func (i *TextItem) SetPhrase(phrase string) { i.Phrase = phrase }
