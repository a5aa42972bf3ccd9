package timeparse

import "time"

// isoFields holds the components read by the ISO-8601 scanner. Components
// that were absent keep the epoch defaults set by newISOFields.
type isoFields struct {
	year   int
	month  time.Month
	day    int
	hour   int
	minute int
	second int
	millis int

	// offsetMinutes is east of UTC: +01:00 is 60.
	offsetMinutes int
}

// Instants CanonicalLayout can write with a four-digit year. Anything outside
// would not decode back.
var (
	minCanonicalMs = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	maxCanonicalMs = time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli() - 1
)

func inCanonicalRange(ms int64) bool {
	return ms >= minCanonicalMs && ms <= maxCanonicalMs
}

func newISOFields() isoFields {
	return isoFields{month: time.January, day: 1}
}

func (f isoFields) unixMilli() int64 {
	t := time.Date(f.year, f.month, f.day, f.hour, f.minute, f.second, f.millis*int(time.Millisecond), time.UTC)
	return t.UnixMilli() - int64(f.offsetMinutes)*int64(time.Minute/time.Millisecond)
}

type isoState int

const (
	isoYear isoState = iota
	isoMonth
	isoDay
	isoClock
	isoSeconds
	isoFraction
	isoZone
	isoDone
	isoFail
)

// DecodeISO8601 decodes
//
//	YYYY[-MM[-DD[Thh:mm[:ss[.fff]][Z|(+|-)hh:mm]]]]
//
// into epoch milliseconds. The whole string must match. Missing components
// default to January 1st, 00:00:00.000 UTC. An offset that moves the instant
// outside years 0000-9999 fails the decode.
func DecodeISO8601(text string) (int64, bool) {
	sc := isoScanner{s: text}
	f := newISOFields()
	state := isoYear

	for state != isoDone {
		switch state {
		case isoYear:
			year, ok := sc.number(4, 0, 9999)
			if !ok {
				return 0, false
			}
			f.year = year
			state = sc.next('-', isoMonth)

		case isoMonth:
			month, ok := sc.number(2, 1, 12)
			if !ok {
				return 0, false
			}
			f.month = time.Month(month)
			state = sc.next('-', isoDay)

		case isoDay:
			day, ok := sc.number(2, 1, daysIn(f.month, f.year))
			if !ok {
				return 0, false
			}
			f.day = day
			state = sc.next('T', isoClock)

		case isoClock:
			hour, ok := sc.number(2, 0, 23)
			if !ok || !sc.accept(':') {
				return 0, false
			}
			minute, ok := sc.number(2, 0, 59)
			if !ok {
				return 0, false
			}
			f.hour, f.minute = hour, minute
			state = isoZone
			if sc.accept(':') {
				state = isoSeconds
			}

		case isoSeconds:
			sec, ok := sc.number(2, 0, 59)
			if !ok {
				return 0, false
			}
			f.second = sec
			state = isoZone
			if sc.accept('.') {
				state = isoFraction
			}

		case isoFraction:
			millis, ok := sc.fraction()
			if !ok {
				return 0, false
			}
			f.millis = millis
			state = isoZone

		case isoZone:
			if sc.done() {
				state = isoDone
				break
			}
			offset, ok := sc.zone()
			if !ok || !sc.done() {
				return 0, false
			}
			f.offsetMinutes = offset
			state = isoDone

		case isoFail:
			return 0, false
		}
	}
	ms := f.unixMilli()
	if !inCanonicalRange(ms) {
		return 0, false
	}
	return ms, true
}

type isoScanner struct {
	s   string
	pos int
}

func (sc *isoScanner) done() bool {
	return sc.pos >= len(sc.s)
}

func (sc *isoScanner) accept(c byte) bool {
	if sc.pos < len(sc.s) && sc.s[sc.pos] == c {
		sc.pos++
		return true
	}
	return false
}

// next finishes at end of input, moves to state after sep, and fails on
// anything else.
func (sc *isoScanner) next(sep byte, state isoState) isoState {
	if sc.done() {
		return isoDone
	}
	if sc.accept(sep) {
		return state
	}
	return isoFail
}

// number reads exactly width digits and checks the value lies in [lo, hi].
func (sc *isoScanner) number(width, lo, hi int) (int, bool) {
	if sc.pos+width > len(sc.s) {
		return 0, false
	}
	n := 0
	for i := 0; i < width; i++ {
		c := sc.s[sc.pos+i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	if n < lo || n > hi {
		return 0, false
	}
	sc.pos += width
	return n, true
}

// fraction reads one or more digits of fractional seconds, truncated to
// milliseconds.
func (sc *isoScanner) fraction() (int, bool) {
	start := sc.pos
	millis := 0
	for sc.pos < len(sc.s) && sc.s[sc.pos] >= '0' && sc.s[sc.pos] <= '9' {
		if sc.pos-start < 3 {
			millis = millis*10 + int(sc.s[sc.pos]-'0')
		}
		sc.pos++
	}
	digits := sc.pos - start
	if digits == 0 {
		return 0, false
	}
	for ; digits < 3; digits++ {
		millis *= 10
	}
	return millis, true
}

// zone reads "Z" or a (+|-)hh:mm offset and returns minutes east of UTC.
func (sc *isoScanner) zone() (int, bool) {
	if sc.accept('Z') {
		return 0, true
	}
	sign := 1
	switch {
	case sc.accept('+'):
	case sc.accept('-'):
		sign = -1
	default:
		return 0, false
	}
	hh, ok := sc.number(2, 0, 23)
	if !ok || !sc.accept(':') {
		return 0, false
	}
	mm, ok := sc.number(2, 0, 59)
	if !ok {
		return 0, false
	}
	return sign * (hh*60 + mm), true
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
