package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/guialocal/internal/flagx"
	"github.com/dmitrijs2005/guialocal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// SessionCheckInterval uses timex.Duration so it can be written as "5m" or
// as integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr   string         `json:"server_endpoint_addr"`
	FunctionsBaseURL     string         `json:"functions_base_url"`
	APIKey               string         `json:"api_key"`
	SessionCheckInterval timex.Duration `json:"session_check_interval"`
	LogLevel             string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Only non-empty values override. Panics on read or
// unmarshal errors.
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

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.FunctionsBaseURL != "" {
		cfg.FunctionsBaseURL = jc.FunctionsBaseURL
	}
	if jc.APIKey != "" {
		cfg.APIKey = jc.APIKey
	}
	if jc.SessionCheckInterval.Duration > 0 {
		cfg.SessionCheckInterval = time.Duration(jc.SessionCheckInterval.Duration)
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
