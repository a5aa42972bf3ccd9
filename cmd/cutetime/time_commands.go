package main

import (
	"fmt"
	"strings"

	"cutetime/internal/config"
	"cutetime/internal/cuteness"
	"cutetime/internal/cutetime"
	"cutetime/internal/timeparse"
	"cutetime/internal/ui"

	"github.com/dustin/go-humanize"
)

const rangesWidth = 80

type phraseResult struct {
	Input  string `json:"input"`
	Phrase string `json:"phrase"`
	Valid  bool   `json:"valid"`
}

func phraseCommand(c *cli, args []string) error {
	fs := newFlagSet(c, "phrase", "phrase [--json] TIMESTAMP...")
	asJSON := fs.Bool("json", false, "print results as JSON")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return usageError(fs)
	}

	cfg, err := trackerConfig()
	if err != nil {
		return err
	}
	now := c.clock.Now()
	results := make([]phraseResult, 0, fs.NArg())
	for _, ts := range fs.Args() {
		phrase, err := cutetime.PhraseAt(cfg, ts, now)
		if err != nil {
			return err
		}
		_, valid := timeparse.Parse(ts)
		results = append(results, phraseResult{Input: ts, Phrase: phrase, Valid: valid})
	}

	if jsonOutput(*asJSON) {
		return writeJSON(c.out, results)
	}
	if len(results) == 1 {
		_, _ = fmt.Fprintln(c.out, results[0].Phrase)
		return nil
	}
	for _, r := range results {
		_, _ = fmt.Fprintf(c.out, "%s\t%s\n", r.Input, r.Phrase)
	}
	return nil
}

type parseResult struct {
	Input     string `json:"input"`
	Valid     bool   `json:"valid"`
	EpochMs   *int64 `json:"epoch_ms,omitempty"`
	Canonical string `json:"canonical,omitempty"`
	Strategy  string `json:"strategy"`
}

func parseCommand(c *cli, args []string) error {
	fs := newFlagSet(c, "parse", "parse [--json] [--utc] TIMESTAMP...")
	asJSON := fs.Bool("json", false, "print results as JSON")
	utc := fs.Bool("utc", false, "read zone-less text as UTC instead of local time")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return usageError(fs)
	}

	parser := timeparse.New(nil)
	if *utc {
		parser = &timeparse.Parser{}
	}

	results := make([]parseResult, 0, fs.NArg())
	for _, ts := range fs.Args() {
		ms, strategy, ok := parser.ParseWithStrategy(ts)
		r := parseResult{Input: ts, Valid: ok, Strategy: strategy.String()}
		if ok {
			r.EpochMs = &ms
			r.Canonical = timeparse.FormatCanonical(ms)
		}
		results = append(results, r)
	}

	if jsonOutput(*asJSON) {
		return writeJSON(c.out, results)
	}
	for _, r := range results {
		if !r.Valid {
			_, _ = fmt.Fprintf(c.out, "%s\t%s\n", r.Input, cutetime.InvalidPhrase)
			continue
		}
		_, _ = fmt.Fprintf(c.out, "%s\t%s\t%s ms\t%s\n", r.Input, r.Canonical, humanize.Comma(*r.EpochMs), r.Strategy)
	}
	return nil
}

func rangesCommand(c *cli, args []string) error {
	fs := newFlagSet(c, "ranges", "ranges [--format rich|light|plain]")
	format := fs.String("format", config.GetString(config.KeyOutputFormat), "markdown style")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}

	ranges, err := config.Ranges()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(c.out, ui.RenderMarkdown(*format, rangesWidth, rangesMarkdown(ranges)))
	return nil
}

// rangesMarkdown renders the range table; the sentinel last entry is shown
// as the upper bound of the one before it.
func rangesMarkdown(ranges cuteness.Ranges) string {
	var b strings.Builder
	b.WriteString("| From (ms) | Until (ms) | Phrase | Unit (ms) |\n")
	b.WriteString("|---|---|---|---|\n")
	for i := 0; i+1 < len(ranges); i++ {
		r := ranges[i]
		unit := "-"
		if r.UnitSize > 0 {
			unit = humanize.Comma(r.UnitSize)
		}
		fmt.Fprintf(&b, "| %s | %s | `%s` | %s |\n",
			formatBoundCell(r.Lower), formatBoundCell(ranges[i+1].Lower), r.Phrase, unit)
	}
	return b.String()
}

func formatBoundCell(ms int64) string {
	if ms == cuteness.NegInf || ms == cuteness.PosInf {
		return cuteness.FormatBound(ms)
	}
	return humanize.Comma(ms)
}
