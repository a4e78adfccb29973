package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rentafleet/fleetapi-go/internal/flagx"
	"github.com/rentafleet/fleetapi-go/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "10s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	BaseURL            string         `json:"base_url"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	RetryMaxAttempts   int            `json:"retry_max_attempts"`
	RetryBaseDelay     timex.Duration `json:"retry_base_delay"`
	RetryBackoffFactor float64        `json:"retry_backoff_factor"`
	RefreshInterval    timex.Duration `json:"refresh_interval"`
	ProbeInterval      timex.Duration `json:"probe_interval"`
	SessionDBPath      string         `json:"session_db_path"`
}

// parseJson overlays Config with values loaded from a JSON file whose
// path is given via the -c/-config flags. Absent file means no overlay;
// only fields present in the JSON override the current values.
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

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.RetryMaxAttempts > 0 {
		cfg.RetryMaxAttempts = jc.RetryMaxAttempts
	}
	if jc.RetryBaseDelay.Duration > 0 {
		cfg.RetryBaseDelay = time.Duration(jc.RetryBaseDelay.Duration)
	}
	if jc.RetryBackoffFactor > 0 {
		cfg.RetryBackoffFactor = jc.RetryBackoffFactor
	}
	if jc.RefreshInterval.Duration > 0 {
		cfg.RefreshInterval = time.Duration(jc.RefreshInterval.Duration)
	}
	if jc.ProbeInterval.Duration > 0 {
		cfg.ProbeInterval = time.Duration(jc.ProbeInterval.Duration)
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
}
