// Package cutetime keeps relative-time phrases for a set of display items.
//
// A Tracker is the handle returned by Bind: it owns its configuration and
// items, resolves every item's origin, renders the phrase through the
// configured ranges, and can re-run that on a periodic trigger.
package cutetime

import (
	"time"

	"cutetime/internal/cuteness"
)

// Config is the full set of options a Tracker runs with. It is replaced
// wholesale, never mutated in place.
type Config struct {
	// RefreshInterval is the trigger period; <= 0 disables periodic updates.
	RefreshInterval time.Duration
	Ranges          cuteness.Ranges
}

// DefaultConfig has periodic updates disabled and the built-in ranges.
func DefaultConfig() Config {
	return Config{Ranges: cuteness.DefaultRanges()}
}

// Options are partial overrides for MergeOptions. Nil fields keep the base
// value; a non-nil Ranges replaces the whole table.
type Options struct {
	RefreshInterval *time.Duration
	Ranges          cuteness.Ranges
}

// MergeOptions shallow-merges opts over base.
func MergeOptions(base Config, opts Options) Config {
	out := Config{RefreshInterval: base.RefreshInterval, Ranges: base.Ranges.Clone()}
	if opts.RefreshInterval != nil {
		out.RefreshInterval = *opts.RefreshInterval
	}
	if opts.Ranges != nil {
		out.Ranges = opts.Ranges.Clone()
	}
	return out
}

// Validate checks the range table.
func (c Config) Validate() error {
	return cuteness.Validate(c.Ranges)
}
