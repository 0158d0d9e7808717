// Package config handles configuration for the admin CLI, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the indexkeeper admin CLI.
//
// Fields:
//   - ServerURL: base URL of the indexkeeper HTTP API.
//   - Subject: subject name embedded in minted tokens.
//   - TokenValidityDuration: lifetime of minted tokens.
type Config struct {
	ServerURL             string
	Subject               string
	TokenValidityDuration time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:9200"
	c.Subject = "admin"
	c.TokenValidityDuration = 15 * time.Minute
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
