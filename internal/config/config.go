package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is the production Recraft API endpoint used when
// RECRAFT_API_URL is not set.
const DefaultBaseURL = "https://external.api.recraft.ai"

// Config holds the process configuration read once at startup. It is treated
// as read-only after Load and passed by reference into the API client.
type Config struct {
	// BaseURL is the Recraft API base URL without a trailing slash.
	BaseURL string

	// APIKey is the bearer token for the Recraft API.
	APIKey string
}

// Load reads configuration from environment variables. A .env file is loaded
// first if present, but its absence is not an error.
//
// RECRAFT_API_KEY is required; a missing key or a malformed RECRAFT_API_URL
// is fatal to startup.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL: getEnv("RECRAFT_API_URL", DefaultBaseURL),
		APIKey:  os.Getenv("RECRAFT_API_KEY"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	for len(cfg.BaseURL) > 0 && cfg.BaseURL[len(cfg.BaseURL)-1] == '/' {
		cfg.BaseURL = cfg.BaseURL[:len(cfg.BaseURL)-1]
	}

	return cfg, nil
}

// Validate checks that required configuration values are set and well-formed.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("RECRAFT_API_KEY is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("RECRAFT_API_URL is not a valid URL: %q", c.BaseURL)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
