// Package config assembles runtime settings for the careerctl client.
// Values come from defaults, then a JSON file, then environment
// variables, then command-line flags; later sources win.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - ServerEndpointURL: base URL of the platform REST API.
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabasePath: location of the local credential database.
type Config struct {
	ServerEndpointURL string
	RequestTimeout    time.Duration
	DatabasePath      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointURL = "http://localhost:8000"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "careerrise.db"
}

// LoadConfig constructs a Config from all sources in precedence order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
