// Package backend is the HTTP client for the course-generation service.
// The generation algorithm itself is opaque to this application; the client
// only starts threads, triggers generation and polls status.
package backend

import (
	"os"
	"strconv"
)

// Config holds connection settings for the generation backend.
type Config struct {
	Endpoint   string
	TimeoutMs  int
	MaxRetries int
	LogCalls   bool
}

// DefaultConfig returns a Config with local-development defaults.
func DefaultConfig() Config {
	return Config{
		Endpoint:   "http://localhost:8000",
		TimeoutMs:  10000,
		MaxRetries: 1,
		LogCalls:   false,
	}
}

// LoadConfig reads backend configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("STUDIA_BACKEND_URL"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("STUDIA_BACKEND_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("STUDIA_BACKEND_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("STUDIA_BACKEND_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	return cfg
}
