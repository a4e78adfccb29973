// Package config handles configuration for the fleet client, including
// defaults, JSON overlay, environment variables and command-line flags.
package config

import "time"

// Config holds runtime settings for the fleet client.
//
// Fields:
//   - BaseURL: root of the backend REST API.
//   - RequestTimeout: deadline for a single request attempt.
//   - RetryMaxAttempts / RetryBaseDelay / RetryBackoffFactor: transient
//     failure retry policy.
//   - RefreshInterval: fallback period for proactive token refresh.
//   - ProbeInterval: how often the connectivity monitor probes the backend.
//   - SessionDBPath: path of the local SQLite file holding the session.
type Config struct {
	BaseURL            string
	RequestTimeout     time.Duration
	RetryMaxAttempts   int
	RetryBaseDelay     time.Duration
	RetryBackoffFactor float64
	RefreshInterval    time.Duration
	ProbeInterval      time.Duration
	SessionDBPath      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:3000/api"
	c.RequestTimeout = 10 * time.Second
	c.RetryMaxAttempts = 3
	c.RetryBaseDelay = 1 * time.Second
	c.RetryBackoffFactor = 2
	c.RefreshInterval = 14 * time.Minute
	c.ProbeInterval = 30 * time.Second
	c.SessionDBPath = "fleet-session.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), the environment, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
