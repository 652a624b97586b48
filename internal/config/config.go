package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the client layer needs to talk to the remote
// budgeting API and to persist local state.
type Config struct {
	// Remote API
	BaseURL        string
	RequestTimeout time.Duration

	// Local persistence (API key, UI preferences)
	SQLiteDBPath string

	// Notifications
	NotifyTimeout time.Duration
}

// Load reads configuration from the environment, with an optional .env file.
// Missing variables fall back to defaults; call Validate before use.
func Load() *Config {
	// .env is a convenience for development; absence is not an error.
	_ = godotenv.Load()

	return &Config{
		BaseURL:        getEnv("API_BASE_URL", "/api/v1"),
		RequestTimeout: getEnvDuration("API_TIMEOUT", 10*time.Second),
		SQLiteDBPath:   getEnv("SQLITE_DB_PATH", "./data/tally.db"),
		NotifyTimeout:  getEnvDuration("NOTIFY_TIMEOUT", 3*time.Second),
	}
}

// Validate checks the configuration for values that would fail at runtime.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("API base URL cannot be empty")
	}
	// Absolute URLs must parse; a bare path like /api/v1 is also accepted
	// because the embedding UI may serve the API on its own origin.
	if strings.Contains(c.BaseURL, "://") {
		if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
			return fmt.Errorf("invalid API base URL %q: %w", c.BaseURL, err)
		}
	} else if !strings.HasPrefix(c.BaseURL, "/") {
		return fmt.Errorf("invalid API base URL %q: must be absolute or start with /", c.BaseURL)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %v", c.RequestTimeout)
	}
	if c.NotifyTimeout <= 0 {
		return fmt.Errorf("notify timeout must be positive, got %v", c.NotifyTimeout)
	}
	if strings.TrimSpace(c.SQLiteDBPath) == "" {
		return fmt.Errorf("sqlite db path cannot be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
