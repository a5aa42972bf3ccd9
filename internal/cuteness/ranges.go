// Package cuteness maps a millisecond time delta onto an ordered table of
// time ranges and renders the matching cute phrase ("3 hours ago").
package cuteness

import (
	"fmt"
	"math"
	"strings"
	"time"

	appErrors "cutetime/internal/errors"
)

const (
	// NegInf is the lower bound of the first range.
	NegInf int64 = math.MinInt64
	// PosInf marks the closing sentinel range.
	PosInf int64 = math.MaxInt64

	// Placeholder is replaced by the computed magnitude inside a phrase.
	Placeholder = "%CT%"

	// FallbackPhrase is returned when no range matches the delta.
	FallbackPhrase = "2 pookies ago"
)

const (
	second = int64(time.Second / time.Millisecond)
	minute = 60 * second
	hour   = 60 * minute
	day    = 24 * hour
	month  = 30 * day
	year   = 12 * month
)

// TimeRange is one bucket of the range table. Lower is the inclusive lower
// bound in milliseconds; the exclusive upper bound is the next entry's Lower.
type TimeRange struct {
	Lower    int64
	Phrase   string
	UnitSize int64
}

// Ranges is an ordered range table, ascending by Lower and starting at NegInf.
type Ranges []TimeRange

// DefaultRanges returns a fresh copy of the built-in range table.
func DefaultRanges() Ranges {
	return Ranges{
		{Lower: NegInf, Phrase: "the future!"},
		{Lower: 0, Phrase: "just now"},
		{Lower: 20 * second, Phrase: "a few seconds ago"},
		{Lower: minute, Phrase: " minutes ago", UnitSize: minute},
		{Lower: hour, Phrase: "an hour ago"},
		{Lower: 2 * hour, Phrase: " hours ago", UnitSize: hour},
		{Lower: day, Phrase: "yesterday"},
		{Lower: 2 * day, Phrase: " days ago", UnitSize: day},
		{Lower: month, Phrase: "last month"},
		{Lower: 2 * month, Phrase: " months ago", UnitSize: month},
		{Lower: year, Phrase: "last year"},
		{Lower: 2 * year, Phrase: " years ago", UnitSize: year},
		{Lower: PosInf, Phrase: "a blinkle ago"},
	}
}

// Clone returns a copy that can be modified without touching r.
func (r Ranges) Clone() Ranges {
	if r == nil {
		return nil
	}
	out := make(Ranges, len(r))
	copy(out, r)
	return out
}

// Validate reports the first violation of the range table invariants.
func Validate(ranges Ranges) error {
	if len(ranges) < 2 {
		return invalidRangeError(fmt.Sprintf("need at least 2 ranges, got %d", len(ranges)))
	}
	if ranges[0].Lower != NegInf {
		return invalidRangeError(fmt.Sprintf("first range must start at -inf, got %s", FormatBound(ranges[0].Lower)))
	}
	for i, r := range ranges {
		if r.UnitSize < 0 {
			return invalidRangeError(fmt.Sprintf("range %d (%s): negative unit size %d", i, FormatBound(r.Lower), r.UnitSize))
		}
		if r.Phrase == "" {
			return invalidRangeError(fmt.Sprintf("range %d (%s): empty phrase", i, FormatBound(r.Lower)))
		}
		if strings.Count(r.Phrase, Placeholder) > 1 {
			return invalidRangeError(fmt.Sprintf("range %d (%s): phrase %q has more than one %s", i, FormatBound(r.Lower), r.Phrase, Placeholder))
		}
		if i > 0 && r.Lower <= ranges[i-1].Lower {
			return invalidRangeError(fmt.Sprintf("range %d: bound %s is not above previous bound %s",
				i, FormatBound(r.Lower), FormatBound(ranges[i-1].Lower)))
		}
	}
	return nil
}

func invalidRangeError(reason string) error {
	return appErrors.New(appErrors.CodeInvalidRange, "invalid time ranges: "+reason, nil)
}
