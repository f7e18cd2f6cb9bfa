package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/messagely/internal/flagx"
	"github.com/dmitrijs2005/messagely/internal/timex"
)

// JsonConfig mirrors Config for JSON decoding. Durations accept both "10s"
// style strings and integer nanoseconds. Pointer and zero-value fields that
// are absent from the file leave the current Config value untouched.
type JsonConfig struct {
	EndpointAddrHTTP      string          `json:"endpoint_addr_http"`
	EndpointAddrGRPC      string          `json:"endpoint_addr_grpc"`
	DatabaseDSN           string          `json:"database_dsn"`
	SecretKey             string          `json:"secret_key"`
	BcryptCost            int             `json:"bcrypt_cost"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	RequestTimeout        *timex.Duration `json:"request_timeout"`
	HealthCheckInterval   *timex.Duration `json:"health_check_interval"`
	LogLevel              string          `json:"log_level"`
}

// parseJson overlays values from the JSON file given with -c or -config.
// Without such a flag nothing is loaded. An unreadable file or invalid JSON
// panics: the server must not start on a half-read configuration.
func parseJson(config *Config, args []string) {
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

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)

	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.RequestTimeout != nil {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.HealthCheckInterval != nil {
		config.HealthCheckInterval = c.HealthCheckInterval.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
