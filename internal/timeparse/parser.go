// Package timeparse turns free-form timestamp strings into epoch milliseconds.
//
// Parsing tries, in order: a strict ISO-8601 decoder, a table of common
// human-written layouts, and the same table again after replacing hyphens
// with spaces (the "2009-10-15 14:06:23" database style).
package timeparse

import (
	"strings"
	"time"

	"cutetime/internal/debug"
)

var log = debug.Scope("timeparse")

// Strategy identifies which step of the fallback chain produced a result.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyISO8601
	StrategyFreeform
	StrategyDatabase
)

func (s Strategy) String() string {
	switch s {
	case StrategyISO8601:
		return "iso8601"
	case StrategyFreeform:
		return "freeform"
	case StrategyDatabase:
		return "database"
	default:
		return "none"
	}
}

// CanonicalLayout is the form origins are written back in. It always decodes
// through the ISO-8601 step.
const CanonicalLayout = "2006-01-02T15:04:05.000Z"

// freeformLayouts are tried in order. Layouts without a zone are read in the
// parser's location.
var freeformLayouts = []string{
	"Mon Jan 2 2006 15:04:05 GMT-0700",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RFC822Z,
	time.RFC822,
	time.UnixDate,
	time.RubyDate,
	time.ANSIC,
	time.RFC3339Nano,
	"Mon Jan 2 2006 15:04:05",
	"Mon Jan 2 2006",
	"Jan 2 2006 15:04:05",
	"Jan 2, 2006 15:04:05",
	"Jan 2 2006 15:04",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2 2006 15:04:05",
	"January 2, 2006",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"2006 01 02 15:04:05",
	"2006 01 02 15:04",
	"2006 01 02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"01 02 2006 15:04:05",
	"01 02 2006",
}

// Parser parses timestamps. The zero value reads zone-less text as UTC.
type Parser struct {
	loc *time.Location
}

// New returns a parser that reads zone-less freeform text in loc.
// A nil loc means time.Local.
func New(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.Local
	}
	return &Parser{loc: loc}
}

var defaultParser = New(nil)

// Parse parses text with a parser bound to time.Local.
func Parse(text string) (int64, bool) {
	return defaultParser.Parse(text)
}

// Parse returns epoch milliseconds for text, or false when no strategy
// accepts it. A false result is the invalid outcome; 0 with true is the epoch.
func (p *Parser) Parse(text string) (int64, bool) {
	ms, _, ok := p.ParseWithStrategy(text)
	return ms, ok
}

// ParseWithStrategy is Parse that also reports the winning strategy.
func (p *Parser) ParseWithStrategy(text string) (int64, Strategy, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, StrategyNone, false
	}
	if ms, ok := DecodeISO8601(s); ok {
		return ms, StrategyISO8601, true
	}
	if ms, ok := p.freeform(s); ok {
		return ms, StrategyFreeform, true
	}
	if strings.Contains(s, "-") {
		if ms, ok := p.freeform(strings.ReplaceAll(s, "-", " ")); ok {
			log.Logf("%q parsed after hyphen replacement", s)
			return ms, StrategyDatabase, true
		}
	}
	log.Logf("%q matched no strategy", s)
	return 0, StrategyNone, false
}

func (p *Parser) freeform(s string) (int64, bool) {
	s = stripZoneComment(s)
	loc := p.location()
	for _, layout := range freeformLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			continue
		}
		if ms := t.UnixMilli(); inCanonicalRange(ms) {
			return ms, true
		}
		log.Logf("%q is outside years 0000-9999 in UTC", s)
		return 0, false
	}
	return 0, false
}

func (p *Parser) location() *time.Location {
	if p == nil || p.loc == nil {
		return time.UTC
	}
	return p.loc
}

// stripZoneComment drops a trailing "(Eastern Daylight Time)" style comment,
// as printed by JavaScript's Date.prototype.toString.
func stripZoneComment(s string) string {
	if i := strings.Index(s, " ("); i > 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

// FormatCanonical renders epoch milliseconds in CanonicalLayout (UTC).
func FormatCanonical(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(CanonicalLayout)
}
