// Package config handles configuration for the resource server: defaults,
// optional .env file, environment variables, JSON overlay, and command-line
// flags, in that order of precedence.
package config

// Config holds runtime settings for the triplog resource server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store,
//     which loses all data on restart.
type Config struct {
	EndpointAddr string
	DatabaseDSN  string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":3000"
	c.DatabaseDSN = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (including an optional .env file), an optional JSON
// file, and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
