package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/shineplatform/sitegen/internal/logger"
	"github.com/shineplatform/sitegen/internal/metrics"
	"github.com/shineplatform/sitegen/internal/models"
	"github.com/shineplatform/sitegen/internal/util"
)

// PreviewStore maps PreviewRecords onto a Store as indented JSON documents.
type PreviewStore struct {
	kv Store
}

// NewPreviewStore returns a repository over kv.
func NewPreviewStore(kv Store) *PreviewStore {
	return &PreviewStore{kv: kv}
}

// Save writes the full record, replacing whatever was stored under its key.
func (p *PreviewStore) Save(ctx context.Context, rec *models.PreviewRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preview %s: %w", rec.Key, err)
	}
	if err := p.kv.Put(ctx, rec.Key, data); err != nil {
		return err
	}
	return nil
}

// Get returns ErrNotFound when the key is absent, unreadable or holds a payload
// that does not decode. The last two cases are logged so they stay visible.
func (p *PreviewStore) Get(ctx context.Context, key string) (*models.PreviewRecord, error) {
	raw, err := p.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Log().WithError(err).WithField("key", util.SanitizeForLog(key)).Warn("preview read failed; treating as not found")
		}
		return nil, ErrNotFound
	}
	rec, err := decodeRecord(key, raw)
	if err != nil {
		logger.Log().WithError(err).WithField("key", util.SanitizeForLog(key)).Warn("corrupt preview record; treating as not found")
		metrics.IncCorruptRecord()
		return nil, ErrNotFound
	}
	return rec, nil
}

// Exists reports whether anything is stored under key, without decoding it.
func (p *PreviewStore) Exists(ctx context.Context, key string) bool {
	_, err := p.kv.Get(ctx, key)
	return err == nil
}

// ListAll returns every decodable record, most recently updated first. Corrupt
// entries are skipped and logged instead of failing the listing.
func (p *PreviewStore) ListAll(ctx context.Context) ([]models.PreviewRecord, error) {
	entries, err := p.kv.List(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]models.PreviewRecord, 0, len(entries))
	for _, e := range entries {
		rec, err := decodeRecord(e.Key, e.Value)
		if err != nil {
			logger.Log().WithError(err).WithField("key", util.SanitizeForLog(e.Key)).Warn("skipping corrupt preview record")
			metrics.IncCorruptRecord()
			continue
		}
		records = append(records, *rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].UpdatedAt.Equal(records[j].UpdatedAt) {
			return records[i].UpdatedAt.After(records[j].UpdatedAt)
		}
		return records[i].Key < records[j].Key
	})
	return records, nil
}

// Delete removes the record. Deleting a missing key is not an error.
func (p *PreviewStore) Delete(ctx context.Context, key string) error {
	return p.kv.Delete(ctx, key)
}

func decodeRecord(key string, raw []byte) (*models.PreviewRecord, error) {
	var rec models.PreviewRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	if rec.Key == "" {
		rec.Key = key
	}
	return &rec, nil
}
