package cartstore

import (
	"fmt"

	cartapp "github.com/farmstore/backend/internal/application/cart"
	"github.com/farmstore/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewStorageFactory builds the per-session cart storage factory for the
// configured backend. When Redis is configured but unreachable, the
// store degrades to in-memory with a warning rather than failing
// startup; carts then survive the session but not a restart.
func NewStorageFactory(cfg config.CartConfig, logger *zap.Logger) (cartapp.StorageFactory, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Backend {
	case "redis":
		store, err := NewRedisStore(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, falling back to in-memory cart storage. "+
				"Carts will not survive a restart.",
				zap.Error(err),
			)
			return NewMemoryStore().Storage, nil
		}
		logger.Info("using Redis cart storage", zap.String("addr", cfg.RedisAddr()))
		return store.Storage, nil

	case "file":
		store, err := NewFileStore(cfg.FileDir)
		if err != nil {
			return nil, err
		}
		logger.Info("using file cart storage", zap.String("dir", cfg.FileDir))
		return store.Storage, nil

	case "memory":
		return NewMemoryStore().Storage, nil

	default:
		return nil, fmt.Errorf("unknown cart backend %q", cfg.Backend)
	}
}
