package ratelimit

import (
	"context"
	"time"

	"github.com/shineplatform/sitegen/internal/metrics"
)

// Login endpoints allow 5 attempts per 15 minutes per client and path.
const (
	AuthWindow      = 15 * time.Minute
	AuthMaxRequests = 5
)

// Result describes the outcome of one Allow call.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter applies a fixed window on top of a Store.
type Limiter struct {
	name   string
	store  Store
	window time.Duration
	max    int
	now    func() time.Time
}

// NewLimiter creates a limiter. name labels the rate-limited metric.
func NewLimiter(name string, store Store, window time.Duration, max int) *Limiter {
	return &Limiter{name: name, store: store, window: window, max: max, now: time.Now}
}

// NewAuthLimiter returns the login limiter over store.
func NewAuthLimiter(store Store) *Limiter {
	return NewLimiter("auth", store, AuthWindow, AuthMaxRequests)
}

// Store returns the backing store so it can be swept.
func (l *Limiter) Store() Store {
	return l.store
}

// Allow records a request for key. Store failures are returned to the caller
// together with an allowing result; callers decide whether to fail open.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	now := l.now()
	count, resetAt, err := l.store.Hit(ctx, key, l.window, now)
	if err != nil {
		return Result{Allowed: true, Remaining: l.max, ResetAt: now.Add(l.window)}, err
	}
	if count > l.max {
		metrics.IncRateLimited(l.name)
		return Result{Allowed: false, Remaining: 0, ResetAt: resetAt}, nil
	}
	return Result{Allowed: true, Remaining: l.max - count, ResetAt: resetAt}, nil
}
