package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the messagely CLI.
//
// Fields:
//   - ServerURL: base URL of the HTTP API.
//   - Timeout: deadline for a single API call.
type Config struct {
	ServerURL string
	Timeout   time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000"
	c.Timeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	return loadConfig(os.Args[1:])
}

func loadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
