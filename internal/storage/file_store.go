package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shineplatform/sitegen/internal/logger"
	"github.com/shineplatform/sitegen/internal/util"
)

const fileExt = ".json"

// FileStore keeps one <key>.json file per record in a single directory.
// There is no locking: concurrent writers to one key race and the last write wins.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created lazily.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the directory holding the record files.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(key string) (string, error) {
	if !util.IsSafeKey(key) {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.dir, key+fileExt), nil
}

func (s *FileStore) ensureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create previews directory: %w", err)
	}
	return nil
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return data, nil
}

func (s *FileStore) Put(_ context.Context, key string, value []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(p, value, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return nil
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", p, err)
	}
	return nil
}

// List returns every *.json file in the directory. Unreadable files are skipped.
func (s *FileStore) List(_ context.Context) ([]Entry, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list previews directory: %w", err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), fileExt) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, de.Name()))
		if err != nil {
			logger.Log().WithError(err).WithField("file", de.Name()).Warn("skipping unreadable preview file")
			continue
		}
		entries = append(entries, Entry{Key: strings.TrimSuffix(de.Name(), fileExt), Value: data})
	}
	return entries, nil
}

func (s *FileStore) Close() error { return nil }
