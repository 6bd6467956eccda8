package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment. A .env file in
// the working directory is loaded first; real environment variables win
// over it.
//
// Variables:
//
//	TRIPLOG_ADDRESS       bind address for the HTTP endpoint
//	TRIPLOG_DATABASE_DSN  PostgreSQL DSN; empty keeps the in-memory store
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("TRIPLOG_ADDRESS"); ok {
		cfg.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("TRIPLOG_DATABASE_DSN"); ok {
		cfg.DatabaseDSN = v
	}
}
