package jobs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shineplatform/sitegen/internal/ratelimit"
	"github.com/shineplatform/sitegen/internal/templates"
)

func TestJanitor_Scheduled(t *testing.T) {
	j, err := NewJanitor(ratelimit.NewMemoryStore(), nil, nil)
	require.NoError(t, err)
	assert.Len(t, j.Cron.Entries(), 1)

	j.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	j.Stop(ctx)
}

func TestJanitor_RunOnceSweepsEverything(t *testing.T) {
	ctx := context.Background()
	start := time.Now()

	store := ratelimit.NewMemoryStore()
	_, _, err := store.Hit(ctx, "1.2.3.4:/api/auth/login", ratelimit.AuthWindow, start)
	require.NoError(t, err)

	api := ratelimit.NewAPILimiter(ratelimit.APIRequestsPerMinute, ratelimit.APIIdleTTL)
	require.True(t, api.Allow("1.2.3.4"))

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bakery-site"), 0o755))
	reg, err := templates.Default()
	require.NoError(t, err)
	catalog := templates.NewCatalog(reg, root, time.Minute)
	require.Len(t, catalog.ListTemplates(), 1)

	j, err := NewJanitor(store, api, catalog)
	require.NoError(t, err)
	j.now = func() time.Time { return start.Add(ratelimit.AuthWindow + time.Minute) }

	j.RunOnce(ctx)

	assert.Zero(t, store.Len())
	assert.Zero(t, api.Len())
	assert.False(t, catalog.Sweep(j.now()), "scan cache should already be dropped")
}

func TestJanitor_NilTargets(t *testing.T) {
	j, err := NewJanitor(nil, nil, nil)
	require.NoError(t, err)
	assert.NotPanics(t, func() { j.RunOnce(context.Background()) })
}
