package commerce

import (
	"errors"
	"time"
)

// Config holds the remote commerce API connection settings
type Config struct {
	// BaseURL is the root of the commerce API, without a trailing slash
	BaseURL string
	// APIKey authenticates this client to the commerce API
	APIKey string
	// Timeout is the per-request HTTP timeout
	Timeout time.Duration
}

// Errors for commerce configuration
var (
	ErrConfigMissingBaseURL = errors.New("commerce: base URL is required")
)

// NewConfig creates a commerce configuration with defaults
func NewConfig(baseURL, apiKey string) *Config {
	return &Config{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Timeout: 10 * time.Second,
	}
}

// Validate validates the commerce configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	return nil
}
