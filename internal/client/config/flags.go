package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/daastan/internal/flagx"
)

// parseFlags overlays cfg with -u, -d, -l and -t. Other flags in args are
// ignored so the JSON loader's -c/-config can share the command line.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, []string{"-u", "-d", "-l", "-t"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.APIBaseURL, "u", cfg.APIBaseURL, "base URL of the storefront API")
	fs.StringVar(&cfg.SessionDSN, "d", cfg.SessionDSN, "SQLite file for the persisted session")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.BoolVar(&cfg.Trace, "t", cfg.Trace, "print a trace span per API call")

	if err := fs.Parse(filtered); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
