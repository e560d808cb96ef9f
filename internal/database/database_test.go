package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"

	"github.com/shineplatform/sitegen/internal/config"
	"github.com/shineplatform/sitegen/internal/storage"
)

func TestConnect(t *testing.T) {
	db, err := Connect("file::memory:?cache=shared")
	require.NoError(t, err)
	assert.NotNil(t, db)

	dbPath := filepath.Join(t.TempDir(), "sitegen.db")
	db, err = Connect(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE ping_check (id INTEGER)").Error)
	assert.FileExists(t, dbPath)
}

func TestRedisClientPing(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(config.RedisConfig{Addr: mr.Addr()})
	defer client.Close()

	assert.NoError(t, Ping(context.Background(), client))

	mr.Close()
	assert.Error(t, Ping(context.Background(), client))
}

func TestOpenStore_Backends(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	cases := []config.Config{
		{Store: config.StoreFile, PreviewsDir: filepath.Join(t.TempDir(), "previews")},
		{Store: config.StoreSQLite, DatabasePath: filepath.Join(t.TempDir(), "sitegen.db")},
		{Store: config.StoreRedis, Redis: config.RedisConfig{Addr: mr.Addr()}},
	}
	for _, cfg := range cases {
		t.Run(cfg.Store, func(t *testing.T) {
			store, err := OpenStore(ctx, cfg)
			require.NoError(t, err)
			defer store.Close()

			require.NoError(t, store.Put(ctx, "launch-page", []byte(`{"key":"launch-page"}`)))
			got, err := store.Get(ctx, "launch-page")
			require.NoError(t, err)
			assert.JSONEq(t, `{"key":"launch-page"}`, string(got))
		})
	}
}

func TestOpenStore_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := OpenStore(ctx, config.Config{Store: "mongo"})
	var cfgErr *config.ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err = OpenStore(ctx, config.Config{Store: config.StoreRedis, Redis: config.RedisConfig{Addr: addr}})
	assert.Error(t, err)
}

func TestOpenStore_ClosesSQLiteWhenMigrationFails(t *testing.T) {
	var opened *gorm.DB
	orig := newGormStore
	newGormStore = func(db *gorm.DB) (*storage.GormStore, error) {
		opened = db
		return nil, errors.New("migrate failed")
	}
	t.Cleanup(func() { newGormStore = orig })

	_, err := OpenStore(context.Background(), config.Config{
		Store:        config.StoreSQLite,
		DatabasePath: filepath.Join(t.TempDir(), "sitegen.db"),
	})
	require.Error(t, err)
	require.NotNil(t, opened)

	sqlDB, err := opened.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping(), "connection should be closed")
}
