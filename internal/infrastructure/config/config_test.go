package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "storefront", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "storefront.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 10*time.Second, cfg.Commerce.Timeout)
	assert.Equal(t, "https://api.paystack.co", cfg.Payment.BaseURL)
	assert.Equal(t, 5*time.Minute, cfg.Sync.ReconcileInterval)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("STOREFRONT_APP_PORT", "9999")
	t.Setenv("STOREFRONT_STORAGE_DRIVER", "memory")
	t.Setenv("STOREFRONT_COMMERCE_BASE_URL", "https://commerce.example.com/api")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.App.Port)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "https://commerce.example.com/api", cfg.Commerce.BaseURL)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STOREFRONT_STORAGE_DRIVER", "cassandra")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.driver")
}

func TestLoad_ProductionValidation(t *testing.T) {
	t.Setenv("STOREFRONT_APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment.secret_key")
}

func TestLoad_ProductionRejectsMemoryDriver(t *testing.T) {
	t.Setenv("STOREFRONT_APP_ENV", "production")
	t.Setenv("STOREFRONT_PAYMENT_SECRET_KEY", "sk_live_0000000000")
	t.Setenv("STOREFRONT_STORAGE_DRIVER", "memory")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "memory")
}

func TestRedisAddr(t *testing.T) {
	s := StorageConfig{RedisHost: "cache.internal", RedisPort: 6380}
	assert.Equal(t, "cache.internal:6380", s.RedisAddr())
}
