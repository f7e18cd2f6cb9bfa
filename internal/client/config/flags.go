package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/messagely/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   base URL of the server (default from Config)
//	-t int      request timeout in seconds (default from Config)
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, "a", "t")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the server")
	timeout := fs.Int("t", int(cfg.Timeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.Timeout = time.Duration(*timeout) * time.Second
}
