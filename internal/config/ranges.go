package config

import (
	"fmt"
	"time"

	"cutetime/internal/cuteness"
	appErrors "cutetime/internal/errors"
)

// Ranges returns the configured range table, or the built-in table when none
// is configured. The result is validated.
func Ranges() (cuteness.Ranges, error) {
	specs, ok, err := RangeSpecs()
	if err != nil {
		return nil, appErrors.New(appErrors.CodeConfigurationError, "invalid ranges config", err)
	}
	if !ok {
		return cuteness.DefaultRanges(), nil
	}
	return RangesFromSpecs(specs)
}

// RangesFromSpecs converts config entries into a validated range table.
func RangesFromSpecs(specs []RangeSpec) (cuteness.Ranges, error) {
	out := make(cuteness.Ranges, 0, len(specs))
	for i, spec := range specs {
		lower, err := cuteness.ParseBound(spec.Bound)
		if err != nil {
			return nil, fmt.Errorf("%s[%d].bound: %w", KeyRanges, i, err)
		}
		unit, err := cuteness.ParseUnitSize(spec.UnitSize)
		if err != nil {
			return nil, fmt.Errorf("%s[%d].unit-size: %w", KeyRanges, i, err)
		}
		out = append(out, cuteness.TimeRange{Lower: lower, Phrase: spec.Phrase, UnitSize: unit})
	}
	if err := cuteness.Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

// RefreshInterval returns refresh-interval-ms as a duration. Zero or negative
// values disable periodic refresh.
func RefreshInterval() time.Duration {
	ms := GetInt(KeyRefreshIntervalMs)
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}
