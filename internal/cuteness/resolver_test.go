package cuteness

import (
	"testing"

	appErrors "cutetime/internal/errors"
)

func TestResolveDefaultRanges(t *testing.T) {
	ranges := DefaultRanges()

	tests := []struct {
		name  string
		delta int64
		want  string
	}{
		{name: "future", delta: -5000, want: "the future!"},
		{name: "far future", delta: NegInf, want: "the future!"},
		{name: "zero is just now", delta: 0, want: "just now"},
		{name: "nineteen seconds", delta: 19 * second, want: "just now"},
		{name: "twenty seconds inclusive", delta: 20 * second, want: "a few seconds ago"},
		{name: "minute boundary", delta: minute, want: "1 minutes ago"},
		{name: "ninety seconds", delta: 90000, want: "1 minutes ago"},
		{name: "fifty nine minutes", delta: 59*minute + 59*second, want: "59 minutes ago"},
		{name: "one hour", delta: hour, want: "an hour ago"},
		{name: "three hours", delta: 3 * 3600 * 1000, want: "3 hours ago"},
		{name: "one day", delta: day + 5*hour, want: "yesterday"},
		{name: "five days", delta: 5 * day, want: "5 days ago"},
		{name: "last month", delta: 45 * day, want: "last month"},
		{name: "three months", delta: 3*month + day, want: "3 months ago"},
		{name: "last year", delta: year + month, want: "last year"},
		{name: "ten years", delta: 10 * year, want: "10 years ago"},
		{name: "max delta hits sentinel", delta: PosInf, want: FallbackPhrase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.delta, ranges); got != tt.want {
				t.Fatalf("Resolve(%d) = %q, want %q", tt.delta, got, tt.want)
			}
		})
	}
}

func TestResolvePlaceholderSubstitution(t *testing.T) {
	ranges := Ranges{
		{Lower: NegInf, Phrase: "soon"},
		{Lower: 0, Phrase: "it was %CT% hours ago", UnitSize: hour},
		{Lower: PosInf, Phrase: "never"},
	}

	if got := Resolve(7200000, ranges); got != "it was 2 hours ago" {
		t.Fatalf("Resolve = %q, want %q", got, "it was 2 hours ago")
	}
	if got := Resolve(0, ranges); got != "it was 0 hours ago" {
		t.Fatalf("Resolve(0) = %q, want zero magnitude", got)
	}
}

func TestResolvePlaceholderReplacesFirstOnly(t *testing.T) {
	ranges := Ranges{
		{Lower: NegInf, Phrase: "%CT% then %CT%", UnitSize: minute},
		{Lower: PosInf, Phrase: "x"},
	}
	if got := Resolve(3*minute, ranges); got != "3 then %CT%" {
		t.Fatalf("Resolve = %q, want only the first token replaced", got)
	}
}

func TestResolvePlaceholderWithoutUnit(t *testing.T) {
	ranges := Ranges{
		{Lower: NegInf, Phrase: "about %CT%now"},
		{Lower: PosInf, Phrase: "x"},
	}
	if got := Resolve(5, ranges); got != "about now" {
		t.Fatalf("Resolve = %q, want placeholder dropped", got)
	}
}

func TestResolveNegativeMagnitudeFloors(t *testing.T) {
	ranges := Ranges{
		{Lower: NegInf, Phrase: " minutes", UnitSize: minute},
		{Lower: PosInf, Phrase: "x"},
	}
	if got := Resolve(-90*second, ranges); got != "-2 minutes" {
		t.Fatalf("Resolve(-90s) = %q, want floor toward -inf", got)
	}
}

func TestResolveNeverEmpty(t *testing.T) {
	ranges := DefaultRanges()
	deltas := []int64{NegInf, -1, 0, 1, 999, minute - 1, hour + 1, day * 400, PosInf - 1, PosInf}
	for _, d := range deltas {
		if got := Resolve(d, ranges); got == "" {
			t.Fatalf("Resolve(%d) returned empty string", d)
		}
	}
}

func TestResolveMalformedRangesFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		ranges Ranges
	}{
		{name: "nil", ranges: nil},
		{name: "single entry", ranges: Ranges{{Lower: NegInf, Phrase: "only"}}},
		{name: "descending", ranges: Ranges{{Lower: 100, Phrase: "a"}, {Lower: 0, Phrase: "b"}}},
		{name: "empty phrase", ranges: Ranges{{Lower: NegInf, Phrase: ""}, {Lower: PosInf, Phrase: "b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(50, tt.ranges); got != FallbackPhrase {
				t.Fatalf("Resolve = %q, want fallback", got)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		ranges  Ranges
		wantErr bool
	}{
		{name: "defaults", ranges: DefaultRanges()},
		{name: "too short", ranges: Ranges{{Lower: NegInf, Phrase: "a"}}, wantErr: true},
		{name: "not starting at -inf", ranges: Ranges{{Lower: 0, Phrase: "a"}, {Lower: 10, Phrase: "b"}}, wantErr: true},
		{name: "equal bounds", ranges: Ranges{{Lower: NegInf, Phrase: "a"}, {Lower: 5, Phrase: "b"}, {Lower: 5, Phrase: "c"}}, wantErr: true},
		{name: "unsorted", ranges: Ranges{{Lower: NegInf, Phrase: "a"}, {Lower: 50, Phrase: "b"}, {Lower: 10, Phrase: "c"}}, wantErr: true},
		{name: "negative unit", ranges: Ranges{{Lower: NegInf, Phrase: "a", UnitSize: -1}, {Lower: PosInf, Phrase: "b"}}, wantErr: true},
		{name: "empty phrase", ranges: Ranges{{Lower: NegInf, Phrase: ""}, {Lower: PosInf, Phrase: "b"}}, wantErr: true},
		{name: "two placeholders", ranges: Ranges{{Lower: NegInf, Phrase: "%CT%%CT%"}, {Lower: PosInf, Phrase: "b"}}, wantErr: true},
		{name: "no closing sentinel", ranges: Ranges{{Lower: NegInf, Phrase: "a"}, {Lower: 0, Phrase: "b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.ranges)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !appErrors.IsCode(err, appErrors.CodeInvalidRange) {
					t.Fatalf("expected invalid_range code, got %q", appErrors.CodeOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewResolverCopiesRanges(t *testing.T) {
	ranges := DefaultRanges()
	r, err := NewResolver(ranges)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	ranges[1].Phrase = "mutated"
	if got := r.Resolve(0); got != "just now" {
		t.Fatalf("resolver observed caller mutation: %q", got)
	}

	if _, err := NewResolver(Ranges{{Lower: 0, Phrase: "x"}}); err == nil {
		t.Fatal("expected NewResolver to reject invalid ranges")
	}
}

func TestMagnitude(t *testing.T) {
	tests := []struct {
		delta, unit, want int64
	}{
		{delta: 0, unit: 60, want: 0},
		{delta: 59, unit: 60, want: 0},
		{delta: 60, unit: 60, want: 1},
		{delta: 119, unit: 60, want: 1},
		{delta: -1, unit: 60, want: -1},
		{delta: -60, unit: 60, want: -1},
		{delta: -61, unit: 60, want: -2},
	}
	for _, tt := range tests {
		if got := Magnitude(tt.delta, tt.unit); got != tt.want {
			t.Errorf("Magnitude(%d, %d) = %d, want %d", tt.delta, tt.unit, got, tt.want)
		}
	}
}
