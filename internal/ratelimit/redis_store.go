package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "sitegen:ratelimit:"

// RedisStore shares windows between instances. Windows expire through key TTLs,
// so Sweep has nothing to do.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Hit implements Store using INCR and a PEXPIRE set on the first hit of a window.
func (s *RedisStore) Hit(ctx context.Context, key string, window time.Duration, now time.Time) (int, time.Time, error) {
	rkey := redisKeyPrefix + key
	count, err := s.client.Incr(ctx, rkey).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		if err := s.client.PExpire(ctx, rkey, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("rate limit expire: %w", err)
		}
		return 1, now.Add(window), nil
	}

	ttl, err := s.client.PTTL(ctx, rkey).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit ttl: %w", err)
	}
	if ttl < 0 {
		// A crash between INCR and PEXPIRE leaves a key without TTL.
		if err := s.client.PExpire(ctx, rkey, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("rate limit expire: %w", err)
		}
		ttl = window
	}
	return int(count), now.Add(ttl), nil
}

// Sweep implements Store.
func (s *RedisStore) Sweep(context.Context, time.Time) (int, error) {
	return 0, nil
}
