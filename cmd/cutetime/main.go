package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"cutetime/internal/config"
	"cutetime/internal/cutetime"
	"cutetime/internal/debug"
	appErrors "cutetime/internal/errors"
	"cutetime/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"
	"github.com/muesli/termenv"
)

// cli carries what every command writes to and measures against.
type cli struct {
	ctx    context.Context
	out    io.Writer
	errOut io.Writer
	clock  clockwork.Clock
}

type command func(c *cli, args []string) error

var commands = map[string]command{
	"phrase":  phraseCommand,
	"parse":   parseCommand,
	"add":     addCommand,
	"list":    listCommand,
	"reset":   resetCommand,
	"rm":      removeCommand,
	"watch":   watchCommand,
	"ranges":  rangesCommand,
	"set":     setCommand,
	"version": versionCommand,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches args to a subcommand and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return runWithClock(ctx, clockwork.NewRealClock(), args, stdout, stderr)
}

func runWithClock(ctx context.Context, clock clockwork.Clock, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}
	name := args[0]
	if name == "help" || name == "-h" || name == "--help" {
		printUsage(stdout)
		return 0
	}
	cmd, ok := commands[name]
	if !ok {
		_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", name)
		printUsage(stderr)
		return 1
	}

	if err := config.Initialize(); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error initializing config: %v\n", err)
		return 1
	}
	if config.GetBool(config.KeyDebug) {
		if err := debug.Init(true); err != nil {
			_, _ = fmt.Fprintf(stderr, "Warning: debug log disabled: %v\n", err)
		}
		defer debug.Close()
	}
	if strings.EqualFold(config.GetString(config.KeyOutputFormat), "plain") {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	c := &cli{ctx: ctx, out: stdout, errOut: stderr, clock: clock}
	if err := cmd(c, args[1:]); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		if appErrors.IsConfiguration(err) {
			return 2
		}
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, `cutetime %s - cute relative timestamps

Usage:
  cutetime <command> [options]

Commands:
  phrase     Print the cute phrase for one or more timestamps
  parse      Show how timestamps are parsed
  add        Track a new item
  list       Render every tracked item once
  reset      Forget an item's recorded origin
  rm         Stop tracking an item
  watch      Live view of tracked items
  ranges     Show the active time ranges
  set        Persist a configuration value
  version    Show version

Examples:
  cutetime phrase "2025-12-25T09:00:00Z"
  cutetime add --label deploy "Dec 24 2025 08:30:00"
  cutetime watch --refresh-interval-ms 60000
  cutetime set refresh-interval-ms 30000

`, Version)
}

// trackerConfig builds the tracker configuration from the loaded config.
func trackerConfig() (cutetime.Config, error) {
	ranges, err := config.Ranges()
	if err != nil {
		return cutetime.Config{}, err
	}
	return cutetime.Config{RefreshInterval: config.RefreshInterval(), Ranges: ranges}, nil
}

func openStore(c *cli) (*store.Store, error) {
	return store.Open(c.ctx, config.GetString(config.KeyStorePath), store.WithClock(c.clock))
}

// jsonOutput reports whether a command should print JSON.
func jsonOutput(flagValue bool) bool {
	return flagValue || config.GetBool(config.KeyOutputJSON)
}
