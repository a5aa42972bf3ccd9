package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	flag "github.com/spf13/pflag"
)

// errUsage marks a command invoked with the wrong arguments; the usage text
// has already been printed.
var errUsage = errors.New("invalid arguments")

func newFlagSet(c *cli, name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(c.errOut, "Usage: cutetime %s\n", usage)
		fs.PrintDefaults()
	}
	return fs
}

// parseFlags parses args, treating --help as success.
func parseFlags(fs *flag.FlagSet, args []string) (help bool, err error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

func usageError(fs *flag.FlagSet) error {
	fs.Usage()
	return errUsage
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
