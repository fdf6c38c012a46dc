package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/imagenstudio/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string     database file, or "memory"
//	-k string     image API key
//	-u string     image API base URL
//	-m string     image model
//	-o string     origin used in reset links
//	-t duration   reset link lifetime, e.g. 30m
//	-s string     reset token source: crypto or math
//	-l level      log level: debug, info, warn, error
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-k", "-u", "-m", "-o", "-t", "-s", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database file, or \"memory\"")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "image API key")
	fs.StringVar(&cfg.APIBaseURL, "u", cfg.APIBaseURL, "image API base URL")
	fs.StringVar(&cfg.Model, "m", cfg.Model, "image model")
	fs.StringVar(&cfg.AppOrigin, "o", cfg.AppOrigin, "origin used in reset links")
	fs.DurationVar(&cfg.ResetTokenTTL, "t", cfg.ResetTokenTTL, "reset link lifetime")
	fs.StringVar(&cfg.TokenSource, "s", cfg.TokenSource, "reset token source: crypto or math")
	fs.TextVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
