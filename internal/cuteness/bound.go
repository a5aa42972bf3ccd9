package cuteness

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	appErrors "cutetime/internal/errors"
)

// ParseBound reads a range bound from configuration text. It accepts
// "-inf", "+inf" or "inf", a millisecond integer, or a Go duration ("90s").
func ParseBound(text string) (int64, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	switch s {
	case "-inf", "-infinity":
		return NegInf, nil
	case "inf", "+inf", "infinity", "+infinity":
		return PosInf, nil
	case "":
		return 0, appErrors.New(appErrors.CodeInvalidRange, "empty range bound", nil)
	}
	return parseMillis(s)
}

// ParseUnitSize reads a unit size as milliseconds or a Go duration.
// An empty value means zero.
func ParseUnitSize(text string) (int64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, nil
	}
	return parseMillis(s)
}

func parseMillis(s string) (int64, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, appErrors.New(appErrors.CodeInvalidRange, fmt.Sprintf("invalid millisecond value %q", s), err)
	}
	return d.Milliseconds(), nil
}

// FormatBound renders a bound the way ParseBound reads it.
func FormatBound(ms int64) string {
	switch ms {
	case NegInf:
		return "-inf"
	case PosInf:
		return "+inf"
	}
	return strconv.FormatInt(ms, 10)
}
