package config

import "os"

// Environment variables recognized by the client.
const (
	EnvBaseURL       = "FLEETAPI_BASE_URL"
	EnvSessionDBPath = "FLEETAPI_SESSION_DB"
)

// parseEnv overlays Config with values from the environment.
func parseEnv(cfg *Config) {
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvSessionDBPath); v != "" {
		cfg.SessionDBPath = v
	}
}
