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
	EndpointAddr *string `json:"address"`
	DatabaseDSN  *string `json:"database_dsn"`
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

	if jc.EndpointAddr != nil {
		cfg.EndpointAddr = *jc.EndpointAddr
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
}
