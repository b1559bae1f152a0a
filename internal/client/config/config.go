// Package config holds runtime settings for the helpdesk client.
package config

import "time"

// Config is assembled from defaults, an optional JSON file, and command-line
// flags, in that order of precedence.
//
// Fields:
//   - ServerAddr: base URL of the remote document store API.
//   - StoreDSN: SQLite DSN of the local durable store.
//   - PollInterval: period of the background refresh of the five collections
//     that have no live feed.
//   - RequestTimeout: per-request budget for remote fetches.
type Config struct {
	ServerAddr     string
	StoreDSN       string
	PollInterval   time.Duration
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://127.0.0.1:8080"
	c.StoreDSN = "helpdesk.db"
	c.PollInterval = 30 * time.Second
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file is given) and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
