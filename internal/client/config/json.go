package config

import (
	"encoding/json"
	"os"

	"github.com/avilov/triplog/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "zero" so a partial file only overrides
// what it names.
type JsonConfig struct {
	ServerBaseURL  *string `json:"server_base_url"`
	LocalDBPath    *string `json:"local_db_path"`
	WeatherEnabled *bool   `json:"weather_enabled"`
	WeatherURL     *string `json:"weather_url"`
	MapEnabled     *bool   `json:"map_enabled"`
	MapURLTemplate *string `json:"map_url_template"`
}

// parseJson overlays Config with values loaded from a JSON file named via
// the -c/-config flags. No flag, no overlay. Read or unmarshal errors
// panic; the caller decides whether to recover.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *jc.ServerBaseURL
	}
	if jc.LocalDBPath != nil {
		cfg.LocalDBPath = *jc.LocalDBPath
	}
	if jc.WeatherEnabled != nil {
		cfg.WeatherEnabled = *jc.WeatherEnabled
	}
	if jc.WeatherURL != nil {
		cfg.WeatherURL = *jc.WeatherURL
	}
	if jc.MapEnabled != nil {
		cfg.MapEnabled = *jc.MapEnabled
	}
	if jc.MapURLTemplate != nil {
		cfg.MapURLTemplate = *jc.MapURLTemplate
	}
}
