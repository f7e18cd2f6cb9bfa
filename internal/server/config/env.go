package config

import (
	"fmt"
	"strconv"
)

// parseEnv overlays values from environment variables. lookup is
// os.LookupEnv in production; tests pass a map-backed function.
//
//	HTTP_ADDR, GRPC_ADDR, DATABASE_DSN, SECRET_KEY, BCRYPT_WORK_FACTOR, LOG_LEVEL
func parseEnv(config *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup("HTTP_ADDR"); ok && v != "" {
		config.EndpointAddrHTTP = v
	}
	if v, ok := lookup("GRPC_ADDR"); ok && v != "" {
		config.EndpointAddrGRPC = v
	}
	if v, ok := lookup("DATABASE_DSN"); ok && v != "" {
		config.DatabaseDSN = v
	}
	if v, ok := lookup("SECRET_KEY"); ok && v != "" {
		config.SecretKey = v
	}
	if v, ok := lookup("BCRYPT_WORK_FACTOR"); ok && v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("BCRYPT_WORK_FACTOR: %w", err))
		}
		config.BcryptCost = cost
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		config.LogLevel = v
	}
}
