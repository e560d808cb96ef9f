package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/shineplatform/sitegen/internal/metrics"
)

// General API traffic gets 100 requests per minute per client.
const (
	APIRequestsPerMinute = 100
	APIIdleTTL           = 5 * time.Minute
)

type apiClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// APILimiter keeps one token bucket per client key.
type APILimiter struct {
	mu      sync.Mutex
	clients map[string]*apiClient
	r       rate.Limit
	burst   int
	idle    time.Duration
	now     func() time.Time
}

// NewAPILimiter creates a limiter refilling perMinute tokens per minute with a
// burst of the same size.
func NewAPILimiter(perMinute int, idle time.Duration) *APILimiter {
	return &APILimiter{
		clients: make(map[string]*apiClient),
		r:       rate.Limit(float64(perMinute) / 60),
		burst:   perMinute,
		idle:    idle,
		now:     time.Now,
	}
}

func (l *APILimiter) getLimiter(key string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[key]
	if !ok {
		c = &apiClient{limiter: rate.NewLimiter(l.r, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter
}

// Allow consumes one token for key.
func (l *APILimiter) Allow(key string) bool {
	now := l.now()
	if l.getLimiter(key, now).AllowN(now, 1) {
		return true
	}
	metrics.IncRateLimited("api")
	return false
}

// Sweep forgets clients idle for longer than the idle TTL.
func (l *APILimiter) Sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) > l.idle {
			delete(l.clients, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked clients.
func (l *APILimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
