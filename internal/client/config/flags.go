package config

import (
	"flag"
	"os"

	"github.com/avilov/triplog/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the resource server
//	-d string   path of the local SQLite database
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the resource server")
	fs.StringVar(&cfg.LocalDBPath, "d", cfg.LocalDBPath, "path of the local database file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
