package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/messagely/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":3000")
//	-g string   gRPC health bind address (e.g. ":50051")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-w int      bcrypt work factor
//	-t int      token validity, minutes (0 = tokens never expire)
//	-r int      request timeout, seconds
//	-i int      health check interval, seconds
//	-l string   log level
//
// Only the flags above are picked out of args (see flagx.FilterArgs), so the
// -c/-config flag handled by parseJson does not break parsing.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, "a", "g", "d", "s", "w", "t", "r", "i", "l")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port of the HTTP API")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port of the gRPC health endpoint")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.IntVar(&config.BcryptCost, "w", config.BcryptCost, "bcrypt work factor")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes, 0 = no expiry)")
	requestTimeout := fs.Int("r", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")
	healthInterval := fs.Int("i", int(config.HealthCheckInterval.Seconds()), "health check interval (in seconds)")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	config.HealthCheckInterval = time.Duration(*healthInterval) * time.Second
}
