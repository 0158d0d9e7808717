package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/indexkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the indexkeeper server (default from Config)
//	-u string   subject name for minted tokens (default from Config)
//	-t int      token validity in minutes (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-u", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base url of the indexkeeper server")
	fs.StringVar(&cfg.Subject, "u", cfg.Subject, "subject name for minted tokens")
	tokenValidity := fs.Int("t", int(cfg.TokenValidityDuration.Minutes()), "token validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
}
