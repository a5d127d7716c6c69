package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shop/storefront/internal/domain/shared"
	"github.com/shop/storefront/internal/infrastructure/config"
)

// NewStore builds the KVStore selected by configuration
func NewStore(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (shared.KVStore, error) {
	switch cfg.Driver {
	case "sqlite":
		logger.Info("using sqlite store", zap.String("path", cfg.SQLitePath))
		return NewSQLiteStore(cfg.SQLitePath)
	case "redis":
		logger.Info("using redis store", zap.String("addr", cfg.RedisAddr()))
		return NewRedisStore(ctx, cfg.RedisAddr(), cfg.RedisPassword, cfg.RedisDB)
	case "memory":
		logger.Warn("using in-memory store, state will not survive restarts")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
