package config

import "time"

// Config holds runtime settings for the ledger CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL (or host:port) of the ledger HTTP API.
//   - RequestTimeout: per-request HTTP timeout.
//   - ExportDir: directory, relative to the working directory, where
//     downloaded exports are saved.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	ExportDir          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:3000"
	c.RequestTimeout = 10 * time.Second
	c.ExportDir = "exports"
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
