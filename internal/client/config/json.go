package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/messagely/internal/flagx"
	"github.com/dmitrijs2005/messagely/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerURL string          `json:"server_url"`
	Timeout   *timex.Duration `json:"timeout"`
}

// parseJson overlays Config with values from the file named by -c/-config.
// It panics on read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ServerURL != "" {
		cfg.ServerURL = c.ServerURL
	}
	if c.Timeout != nil {
		cfg.Timeout = c.Timeout.Duration
	}
}
