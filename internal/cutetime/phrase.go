package cutetime

import (
	"time"

	"cutetime/internal/cuteness"
	"cutetime/internal/timeparse"
)

// InvalidPhrase is returned by the single-value entry points when the
// timestamp does not parse.
const InvalidPhrase = "INVALID DATE/TIME FORMAT"

var timeNow = time.Now

// Phrase returns the cute phrase for ts using the default ranges.
func Phrase(ts string) string {
	return phraseAt(cuteness.DefaultRanges(), timeparse.Parse, ts, timeNow())
}

// PhraseWithConfig returns the cute phrase for ts using cfg's ranges.
// Only an invalid range table is an error; an unparseable ts yields
// InvalidPhrase.
func PhraseWithConfig(cfg Config, ts string) (string, error) {
	return PhraseAt(cfg, ts, timeNow())
}

// PhraseAt is PhraseWithConfig measured from now.
func PhraseAt(cfg Config, ts string, now time.Time) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	return phraseAt(cfg.Ranges, timeparse.Parse, ts, now), nil
}

func phraseAt(ranges cuteness.Ranges, parse func(string) (int64, bool), ts string, now time.Time) string {
	origin, ok := parse(ts)
	if !ok {
		return InvalidPhrase
	}
	return cuteness.Resolve(now.UnixMilli()-origin, ranges)
}
