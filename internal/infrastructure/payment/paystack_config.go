package payment

import (
	"errors"
	"time"
)

// PaystackProductionAPIURL is the production API endpoint
const PaystackProductionAPIURL = "https://api.paystack.co"

// PaystackConfig holds configuration for the Paystack API integration
type PaystackConfig struct {
	// SecretKey is the secret API key from the Paystack dashboard
	SecretKey string
	// BaseURL is the base URL for the Paystack API
	BaseURL string
	// Timeout is the HTTP request timeout
	Timeout time.Duration
}

// Errors for Paystack configuration
var (
	ErrPaystackConfigMissingSecretKey = errors.New("paystack: secret key is required")
)

// NewPaystackConfig creates a new Paystack configuration with defaults
func NewPaystackConfig(secretKey string) *PaystackConfig {
	return &PaystackConfig{
		SecretKey: secretKey,
		BaseURL:   PaystackProductionAPIURL,
		Timeout:   30 * time.Second,
	}
}

// Validate validates the Paystack configuration
func (c *PaystackConfig) Validate() error {
	if c.SecretKey == "" {
		return ErrPaystackConfigMissingSecretKey
	}
	if c.BaseURL == "" {
		c.BaseURL = PaystackProductionAPIURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}
