package store

// Item is a stored row. It satisfies cutetime.Item so a Tracker can render it
// directly; SetOrigin marks the row dirty for SaveOrigins.
type Item struct {
	ID          int64  `json:"id"`
	Label       string `json:"label,omitempty"`
	DisplayText string `json:"text"`
	CreatedAt   string `json:"created_at"`
	Phrase      string `json:"phrase,omitempty"`

	origin    string
	hasOrigin bool
	dirty     bool
}

func (i *Item) Origin() (string, bool) { return i.origin, i.hasOrigin }

func (i *Item) SetOrigin(origin string) {
	if i.hasOrigin && i.origin == origin {
		return
	}
	i.origin = origin
	i.hasOrigin = true
	i.dirty = true
}

// ClearOrigin forgets the in-memory origin to match Store.ClearOrigin.
func (i *Item) ClearOrigin() {
	i.origin = ""
	i.hasOrigin = false
	i.dirty = false
}

func (i *Item) Text() string { return i.DisplayText }

func (i *Item) SetPhrase(phrase string) { i.Phrase = phrase }

// Dirty reports whether the origin changed since the item was loaded or saved.
func (i *Item) Dirty() bool { return i.dirty }

// MarkSaved records that the current origin has been written.
func (i *Item) MarkSaved() { i.dirty = false }

// Title is the label when set, otherwise the display text.
func (i *Item) Title() string {
	if i.Label != "" {
		return i.Label
	}
	return i.DisplayText
}
