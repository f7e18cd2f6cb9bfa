// Package config loads runtime configuration for the messagely CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the messagely HTTP API
//	-t int      per-request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be either a
// string like "5s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:3000",
//	  "timeout": "5s"
//	}
package config
