package config

import (
	"time"

	"github.com/dmitrijs2005/guialocal/internal/common"
)

// Config holds runtime settings for the guialocal CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - FunctionsBaseURL: base URL of the backend HTTP functions endpoint.
//   - APIKey: public key sent in the "apikey" header of function calls.
//   - SessionCheckInterval: how often an authenticated session is revalidated.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerEndpointAddr   string
	FunctionsBaseURL     string
	APIKey               string
	SessionCheckInterval time.Duration
	LogLevel             string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.FunctionsBaseURL = "http://127.0.0.1:8080"
	c.APIKey = "public-anon-key"
	c.SessionCheckInterval = common.SessionCheckInterval
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
