// Package config handles configuration for the client: defaults, optional
// JSON overlay, and command-line flags, in that order of precedence.
package config

// Config holds runtime settings for the triplog client.
//
// Fields:
//   - ServerBaseURL: base URL of the resource server (users/trips collections).
//   - LocalDBPath: path of the local SQLite file holding the persisted session.
//   - Weather / Map: cosmetic link-out integrations; entirely outside the
//     data model, safe to disable.
type Config struct {
	ServerBaseURL string
	LocalDBPath   string

	WeatherEnabled bool
	WeatherURL     string

	MapEnabled     bool
	MapURLTemplate string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:3000"
	c.LocalDBPath = "triplog.db"
	c.WeatherEnabled = true
	c.WeatherURL = "https://weather-app-five-mu-20.vercel.app/"
	c.MapEnabled = true
	c.MapURLTemplate = "https://www.google.com/maps/search/?api=1&query=%s"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
