package database

import (
	"context"
	"fmt"

	"github.com/shineplatform/sitegen/internal/config"
	"github.com/shineplatform/sitegen/internal/logger"
	"github.com/shineplatform/sitegen/internal/storage"
)

var newGormStore = storage.NewGormStore

// OpenStore returns the preview backend selected by cfg.Store. The caller owns
// the returned store and must Close it.
func OpenStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.Store {
	case config.StoreRedis:
		client := NewRedisClient(cfg.Redis)
		if err := Ping(ctx, client); err != nil {
			_ = client.Close()
			return nil, err
		}
		logger.Log().WithField("addr", cfg.Redis.Addr).Info("using redis preview store")
		return storage.NewRedisStore(client), nil
	case config.StoreSQLite:
		db, err := Connect(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		store, err := newGormStore(db)
		if err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
			return nil, err
		}
		logger.Log().WithField("path", cfg.DatabasePath).Info("using sqlite preview store")
		return store, nil
	case config.StoreFile, "":
		logger.Log().WithField("dir", cfg.PreviewsDir).Info("using file preview store")
		return storage.NewFileStore(cfg.PreviewsDir), nil
	default:
		return nil, &config.ConfigError{Key: "SITEGEN_STORE", Reason: fmt.Sprintf("has unsupported value %q", cfg.Store)}
	}
}
