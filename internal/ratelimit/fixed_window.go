// Package ratelimit implements a redis-backed fixed-window request limiter
// for the inspect and job-creation endpoints.
package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type Decision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// RedisFixedWindow counts requests per subject in fixed windows keyed by
// window start. INCR plus PEXPIRE keeps it a two-command pipeline; the
// burst at window edges is acceptable for this service.
type RedisFixedWindow struct {
	client    redis.UniversalClient
	limit     int64
	window    time.Duration
	keyPrefix string
	now       func() time.Time
}

func NewRedisFixedWindow(client redis.UniversalClient, limit int, window time.Duration, keyPrefix string) (*RedisFixedWindow, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	if window <= 0 {
		return nil, fmt.Errorf("window must be positive")
	}

	if strings.TrimSpace(keyPrefix) == "" {
		keyPrefix = "bmpflow:ratelimit"
	}

	return &RedisFixedWindow{
		client:    client,
		limit:     int64(limit),
		window:    window,
		keyPrefix: keyPrefix,
		now:       time.Now,
	}, nil
}

func (l *RedisFixedWindow) Allow(ctx context.Context, subject string) (Decision, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "anonymous"
	}

	now := l.now().UTC()
	windowStart := now.Truncate(l.window)
	key := fmt.Sprintf("%s:%s:%d", l.keyPrefix, subject, windowStart.UnixMilli())

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	// Unconditional expiry is safe: the key embeds the window start, so
	// refreshing the TTL only delays cleanup of a counter that stops
	// being read once its window has passed.
	pipe.PExpire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("increment rate limit counter: %w", err)
	}

	count := incr.Val()
	if count > l.limit {
		return Decision{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: windowStart.Add(l.window).Sub(now),
		}, nil
	}

	return Decision{
		Allowed:   true,
		Remaining: l.limit - count,
	}, nil
}
