package cuteness

import (
	"strconv"
	"strings"
)

// Resolver resolves deltas against a validated range table.
type Resolver struct {
	ranges Ranges
}

// NewResolver validates ranges and returns a resolver that owns a copy of them.
func NewResolver(ranges Ranges) (*Resolver, error) {
	if err := Validate(ranges); err != nil {
		return nil, err
	}
	return &Resolver{ranges: ranges.Clone()}, nil
}

// Ranges returns a copy of the resolver's range table.
func (r *Resolver) Ranges() Ranges {
	return r.ranges.Clone()
}

// Resolve returns the phrase for deltaMs.
func (r *Resolver) Resolve(deltaMs int64) string {
	return Resolve(deltaMs, r.ranges)
}

// Resolve scans ranges in order and renders the first range whose
// [Lower, next.Lower) interval contains deltaMs. The last entry only closes
// the previous interval and is never matched itself. When nothing matches,
// FallbackPhrase is returned, so the result is never empty.
func Resolve(deltaMs int64, ranges Ranges) string {
	for i := 0; i < len(ranges)-1; i++ {
		cur := ranges[i]
		if deltaMs < cur.Lower || deltaMs >= ranges[i+1].Lower {
			continue
		}
		if phrase := render(cur, deltaMs); phrase != "" {
			return phrase
		}
		break
	}
	return FallbackPhrase
}

func render(r TimeRange, deltaMs int64) string {
	count := ""
	if r.UnitSize > 0 {
		count = strconv.FormatInt(Magnitude(deltaMs, r.UnitSize), 10)
	}
	if strings.Contains(r.Phrase, Placeholder) {
		return strings.Replace(r.Phrase, Placeholder, count, 1)
	}
	return count + r.Phrase
}

// Magnitude is floor(deltaMs / unitSize) for a positive unit size.
func Magnitude(deltaMs, unitSize int64) int64 {
	q := deltaMs / unitSize
	if deltaMs%unitSize != 0 && deltaMs < 0 {
		q--
	}
	return q
}
