package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shineplatform/sitegen/internal/logger"
	"github.com/shineplatform/sitegen/internal/models"
)

func newRecord(key string, updated time.Time) *models.PreviewRecord {
	return &models.PreviewRecord{
		Key:            key,
		Template:       "inspiration-site",
		Data:           json.RawMessage(`{"hero":{"title":"` + key + `"}}`),
		WhatsAppNumber: models.DefaultWhatsAppNumber,
		CreatedAt:      updated,
		UpdatedAt:      updated,
	}
}

func TestPreviewStore_SaveWritesIndentedJSON(t *testing.T) {
	dir := t.TempDir()
	p := NewPreviewStore(NewFileStore(dir))
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, p.Save(context.Background(), newRecord("acme", now)))

	raw, err := os.ReadFile(filepath.Join(dir, "acme.json"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "{\n  \"key\": \"acme\""))
	assert.Contains(t, string(raw), `"whatsappNumber": "972546104210"`)
	assert.Contains(t, string(raw), `"updatedAt": "2026-05-01T10:00:00Z"`)
}

func TestPreviewStore_RoundTrip(t *testing.T) {
	p := NewPreviewStore(NewFileStore(t.TempDir()))
	ctx := context.Background()
	rec := newRecord("acme", time.Now().UTC().Truncate(time.Millisecond))

	require.NoError(t, p.Save(ctx, rec))
	got, err := p.Get(ctx, "acme")
	require.NoError(t, err)

	assert.Equal(t, rec.Template, got.Template)
	assert.JSONEq(t, string(rec.Data), string(got.Data))
	assert.True(t, got.UpdatedAt.Equal(rec.UpdatedAt))
}

func TestPreviewStore_CorruptIsNotFoundAndLogged(t *testing.T) {
	buf := &bytes.Buffer{}
	logger.Init(false, buf)
	defer logger.Init(false, nil)

	dir := t.TempDir()
	p := NewPreviewStore(NewFileStore(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))

	_, err := p.Get(context.Background(), "broken")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, buf.String(), "corrupt preview record")
}

func TestPreviewStore_ExistsDoesNotDecode(t *testing.T) {
	buf := &bytes.Buffer{}
	logger.Init(false, buf)
	defer logger.Init(false, nil)

	dir := t.TempDir()
	p := NewPreviewStore(NewFileStore(dir))
	ctx := context.Background()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))

	assert.True(t, p.Exists(ctx, "broken"))
	assert.False(t, p.Exists(ctx, "ghost"))
	assert.NotContains(t, buf.String(), "corrupt")
}

func TestPreviewStore_ListSortsAndSkipsCorrupt(t *testing.T) {
	buf := &bytes.Buffer{}
	logger.Init(false, buf)
	defer logger.Init(false, nil)

	dir := t.TempDir()
	p := NewPreviewStore(NewFileStore(dir))
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, p.Save(ctx, newRecord("old", base)))
	require.NoError(t, p.Save(ctx, newRecord("new", base.Add(2*time.Hour))))
	require.NoError(t, p.Save(ctx, newRecord("mid", base.Add(time.Hour))))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.json"), []byte("]"), 0o644))

	list, err := p.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{list[0].Key, list[1].Key, list[2].Key})
	assert.Contains(t, buf.String(), "skipping corrupt preview record")

	// resaving the oldest moves it to the front
	require.NoError(t, p.Save(ctx, newRecord("old", base.Add(3*time.Hour))))
	list, err = p.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "old", list[0].Key)
	assert.Len(t, list, 3)
}

func TestPreviewStore_KeyFallsBackToStorageKey(t *testing.T) {
	dir := t.TempDir()
	p := NewPreviewStore(NewFileStore(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "legacy.json"), []byte(`{"template":"dj-template","data":{}}`), 0o644))

	got, err := p.Get(context.Background(), "legacy")
	require.NoError(t, err)
	assert.Equal(t, "legacy", got.Key)
}

func TestPreviewStore_Delete(t *testing.T) {
	p := NewPreviewStore(NewFileStore(t.TempDir()))
	ctx := context.Background()
	require.NoError(t, p.Save(ctx, newRecord("acme", time.Now())))

	require.NoError(t, p.Delete(ctx, "acme"))
	_, err := p.Get(ctx, "acme")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, p.Delete(ctx, "acme"))
}
