// Package storage persists preview records behind a small key-value contract so
// the on-disk layout can be swapped for redis or an embedded database.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a key has no stored value.
	ErrNotFound = errors.New("storage: key not found")
	// ErrInvalidKey is returned when a key cannot be mapped onto the backend safely.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// Entry is one stored key with its raw value.
type Entry struct {
	Key   string
	Value []byte
}

// Store is the key-value contract every preview backend implements.
// Delete of a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]Entry, error)
	Close() error
}
