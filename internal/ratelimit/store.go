// Package ratelimit provides the fixed-window limiter guarding login endpoints
// and the token-bucket limiter applied to the rest of the API.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Store counts hits per key inside fixed windows.
type Store interface {
	// Hit records one request for key and returns the count in the current
	// window together with the moment that window ends.
	Hit(ctx context.Context, key string, window time.Duration, now time.Time) (int, time.Time, error)
	// Sweep drops windows that ended before now and returns how many it removed.
	Sweep(ctx context.Context, now time.Time) (int, error)
}

type bucket struct {
	count   int
	resetAt time.Time
}

// MemoryStore keeps windows in process memory. Suitable for a single instance.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[string]*bucket)}
}

// Hit implements Store.
func (s *MemoryStore) Hit(_ context.Context, key string, window time.Duration, now time.Time) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[key]
	if !ok || now.After(b.resetAt) {
		b = &bucket{resetAt: now.Add(window)}
		s.buckets[key] = b
	}
	b.count++
	return b.count, b.resetAt, nil
}

// Sweep implements Store.
func (s *MemoryStore) Sweep(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, b := range s.buckets {
		if now.After(b.resetAt) {
			delete(s.buckets, key)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of tracked windows.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}
