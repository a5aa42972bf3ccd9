package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cutetime/internal/config"
	"cutetime/internal/ui"
	"cutetime/internal/ui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

var cliEpoch = time.Date(2025, time.December, 25, 12, 0, 0, 0, time.UTC)

type cliHarness struct {
	t     *testing.T
	clock *clockwork.FakeClock
	dir   string
}

func newHarness(t *testing.T) *cliHarness {
	t.Helper()
	t.Cleanup(config.ResetForTesting(t))
	dir := t.TempDir()
	require.NoError(t, config.Set(config.KeyStorePath, filepath.Join(dir, "items.db")))
	return &cliHarness{t: t, clock: clockwork.NewFakeClockAt(cliEpoch), dir: dir}
}

func (h *cliHarness) run(args ...string) (stdout, stderr string, code int) {
	h.t.Helper()
	return h.runCtx(context.Background(), args...)
}

func (h *cliHarness) runCtx(ctx context.Context, args ...string) (stdout, stderr string, code int) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	code = runWithClock(ctx, h.clock, args, &out, &errOut)
	return out.String(), errOut.String(), code
}

func TestRunUsage(t *testing.T) {
	h := newHarness(t)

	_, stderr, code := h.run()
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "Usage:")

	_, stderr, code = h.run("bogus")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "Unknown command: bogus")

	stdout, _, code := h.run("help")
	require.Zero(t, code)
	require.Contains(t, stdout, "Commands:")
}

func TestPhraseCommand(t *testing.T) {
	h := newHarness(t)

	stdout, _, code := h.run("phrase", "2025-12-25T09:00:00Z")
	require.Zero(t, code)
	require.Equal(t, "3 hours ago\n", stdout)

	stdout, _, code = h.run("phrase", "2025-12-25T11:58:30Z", "nope")
	require.Zero(t, code)
	require.Equal(t, "2025-12-25T11:58:30Z\t1 minutes ago\nnope\tINVALID DATE/TIME FORMAT\n", stdout)

	_, stderr, code := h.run("phrase")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "Usage: cutetime phrase")
}

func TestPhraseCommandJSON(t *testing.T) {
	h := newHarness(t)

	stdout, _, code := h.run("phrase", "--json", "2025-12-24T06:00:00Z", "nope")
	require.Zero(t, code)

	var results []phraseResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Equal(t, []phraseResult{
		{Input: "2025-12-24T06:00:00Z", Phrase: "yesterday", Valid: true},
		{Input: "nope", Phrase: "INVALID DATE/TIME FORMAT", Valid: false},
	}, results)
}

func TestPhraseCommandBadRangesExitsWithConfigError(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, config.Set(config.KeyRanges, []map[string]any{
		{"bound": "10", "phrase": "a"},
		{"bound": "5", "phrase": "b"},
	}))

	_, stderr, code := h.run("phrase", "2025-12-25")
	require.Equal(t, 2, code)
	require.Contains(t, stderr, "Error:")
}

func TestParseCommand(t *testing.T) {
	h := newHarness(t)

	stdout, _, code := h.run("parse", "--utc", "2009-10-15 14:06:23", "Oct 15 2009 22:11:19", "2009-11")
	require.Zero(t, code)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "2009-10-15T14:06:23.000Z")
	require.True(t, strings.HasSuffix(lines[0], "database"))
	require.True(t, strings.HasSuffix(lines[1], "freeform"))
	require.Contains(t, lines[2], "1,257,033,600,000 ms")
	require.True(t, strings.HasSuffix(lines[2], "iso8601"))
}

func TestParseCommandJSON(t *testing.T) {
	h := newHarness(t)

	stdout, _, code := h.run("parse", "--json", "1970-01-01T00:00:00Z", "garbage")
	require.Zero(t, code)

	var results []parseResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 2)
	require.True(t, results[0].Valid)
	require.NotNil(t, results[0].EpochMs, "epoch 0 is a valid result and must be printed")
	require.Zero(t, *results[0].EpochMs)
	require.Nil(t, results[1].EpochMs)
	require.Contains(t, stdout, `"epoch_ms": 0`)
	require.Equal(t, "1970-01-01T00:00:00.000Z", results[0].Canonical)
	require.False(t, results[1].Valid)
	require.Equal(t, "none", results[1].Strategy)
}

func TestItemLifecycle(t *testing.T) {
	h := newHarness(t)

	stdout, _, code := h.run("add", "--label", "deploy", "queued")
	require.Zero(t, code)
	require.Equal(t, "Added #1\n", stdout)

	_, _, code = h.run("add", "2025-12-25T09:00:00Z")
	require.Zero(t, code)

	stdout, _, code = h.run("list")
	require.Zero(t, code)
	require.Contains(t, stdout, "deploy")
	require.Contains(t, stdout, "just now")
	require.Contains(t, stdout, "3 hours ago")
	require.Contains(t, stdout, "2 item(s)")

	h.clock.Advance(5 * time.Minute)
	stdout, _, code = h.run("list", "--json")
	require.Zero(t, code)
	var entries []listEntry
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	require.Len(t, entries, 2)
	require.Equal(t, "5 minutes ago", entries[0].Phrase, "origin must stay pinned between runs")
	require.Equal(t, "2025-12-25T12:00:00.000Z", entries[0].Origin)
	require.Equal(t, "2025-12-25T12:00:00Z", entries[0].CreatedAt, "created_at follows the injected clock")

	stdout, _, code = h.run("reset", "#1")
	require.Zero(t, code)
	require.Equal(t, "Reset #1\n", stdout)

	stdout, _, code = h.run("list", "--json")
	require.Zero(t, code)
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	require.Equal(t, "just now", entries[0].Phrase)

	stdout, _, code = h.run("rm", "2")
	require.Zero(t, code)
	require.Equal(t, "Removed #2\n", stdout)

	_, stderr, code := h.run("rm", "2")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "item 2 not found")

	_, stderr, code = h.run("rm", "two")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "invalid item id")
}

func TestStoreErrorsShowCause(t *testing.T) {
	h := newHarness(t)
	blocker := filepath.Join(h.dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	require.NoError(t, config.Set(config.KeyStorePath, filepath.Join(blocker, "items.db")))

	_, stderr, code := h.run("list")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "Error: create store directory: ")
}

func TestListEmpty(t *testing.T) {
	h := newHarness(t)
	stdout, _, code := h.run("list")
	require.Zero(t, code)
	require.Equal(t, "Nothing tracked yet.\n", stdout)
}

func TestRangesCommandPlain(t *testing.T) {
	h := newHarness(t)
	stdout, _, code := h.run("ranges", "--format", "plain")
	require.Zero(t, code)
	require.Contains(t, stdout, "-inf")
	require.Contains(t, stdout, "20,000")
	require.Contains(t, stdout, "a few seconds ago")
	require.NotContains(t, stdout, "a blinkle ago", "the closing sentinel is never matched")
}

func TestWatchPlainOnce(t *testing.T) {
	h := newHarness(t)
	_, _, code := h.run("add", "2025-12-25T11:00:00Z")
	require.Zero(t, code)

	stdout, _, code := h.run("watch", "--plain")
	require.Zero(t, code)
	require.Equal(t, "[12:00:00]\n  #1\tan hour ago\t2025-12-25T11:00:00Z\n", stdout)
}

func TestWatchPlainStopsOnCancel(t *testing.T) {
	h := newHarness(t)
	_, _, code := h.run("add", "queued")
	require.Zero(t, code)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type result struct {
		stdout, stderr string
		code           int
	}
	done := make(chan result, 1)
	go func() {
		stdout, stderr, code := h.runCtx(ctx, "watch", "--plain", "--refresh-interval-ms", "1000")
		done <- result{stdout, stderr, code}
	}()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer waitCancel()
	require.NoError(t, h.clock.BlockUntilContext(waitCtx, 1), "the refresh ticker should be running")
	cancel()

	select {
	case r := <-done:
		require.Zero(t, r.code, r.stderr)
		require.Equal(t, "[12:00:00]\n  #1\tjust now\tqueued\n", r.stdout)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchInteractiveRunsProgram(t *testing.T) {
	h := newHarness(t)
	_, _, code := h.run("add", "queued")
	require.Zero(t, code)

	var got *ui.App
	orig := newProgram
	newProgram = func(app *ui.App) programRunner {
		got = app
		return noopProgram{}
	}
	defer func() { newProgram = orig }()

	_, stderr, code := h.run("watch")
	require.Zero(t, code, stderr)
	require.NotNil(t, got)
	require.Len(t, got.Items(), 1)
	require.Equal(t, "just now", got.Items()[0].Phrase)
}

func TestWatchAppliesConfiguredTheme(t *testing.T) {
	h := newHarness(t)
	defer theme.Set(theme.CurrentName())

	orig := newProgram
	newProgram = func(*ui.App) programRunner { return noopProgram{} }
	defer func() { newProgram = orig }()

	require.NoError(t, config.Set(config.KeyTheme, "nord"))
	_, stderr, code := h.run("watch")
	require.Zero(t, code, stderr)
	require.Equal(t, "nord", theme.CurrentName())

	require.NoError(t, config.Set(config.KeyTheme, "paisley"))
	_, stderr, code = h.run("watch")
	require.Zero(t, code)
	require.Contains(t, stderr, `unknown theme "paisley"`)
	require.Equal(t, "nord", theme.CurrentName(), "an unknown name keeps the active palette")
}

func TestRunProgramErrors(t *testing.T) {
	err := runProgram(ui.Config{}, func(ui.Config) (*ui.App, error) {
		return nil, errors.New("boom")
	}, func(*ui.App) programRunner {
		t.Fatal("factory should not be called")
		return nil
	})
	require.ErrorContains(t, err, "initialize UI: boom")

	err = runProgram(ui.Config{}, func(ui.Config) (*ui.App, error) {
		return &ui.App{}, nil
	}, func(*ui.App) programRunner {
		return failingProgram{}
	})
	require.ErrorContains(t, err, "run UI: tty gone")
}

func TestSetCommand(t *testing.T) {
	h := newHarness(t)
	t.Chdir(h.dir)

	stdout, _, code := h.run("set", config.KeyRefreshIntervalMs, "30000")
	require.Zero(t, code)
	require.Equal(t, "refresh-interval-ms = 30000\n", stdout)
	require.Equal(t, 30*time.Second, config.RefreshInterval())

	_, _, code = h.run("set", config.KeyRanges, "x")
	require.Equal(t, 2, code)
}

func TestVersionCommand(t *testing.T) {
	h := newHarness(t)
	stdout, _, code := h.run("version")
	require.Zero(t, code)
	require.Contains(t, stdout, "cutetime version")
	require.Contains(t, stdout, "Go version:")
}

type noopProgram struct{}

func (noopProgram) Run() (tea.Model, error) {
	return nil, nil
}

type failingProgram struct{}

func (failingProgram) Run() (tea.Model, error) {
	return nil, errors.New("tty gone")
}
