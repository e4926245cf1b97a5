// Package cache wraps go-redis with JSON helpers for the dashboard
// payloads. A nil *Cache is valid and behaves as a permanent miss, so callers
// never branch on whether Redis is configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jcamiloaa/experienciaas/internal/logger"
)

var ErrMiss = errors.New("cache miss")

type Cache struct {
	rdb *redis.Client
}

// NewWithClient wraps an existing client without pinging it. Connect
// is the usual path; this one serves tests and custom client setups.
func NewWithClient(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// Connect creates a Redis client and verifies connectivity.
func Connect(ctx context.Context, addr, password string, db int) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	logger.Info("redis connected", "addr", addr)
	return &Cache{rdb: rdb}, nil
}

// GetJSON loads key into dest. Returns ErrMiss when absent or when the
// cache is not configured.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) error {
	if c == nil {
		return ErrMiss
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// SetJSON stores value under key with a TTL. Failures are logged, not
// returned: a broken cache must never fail a request.
func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		logger.Warn("cache set failed", "key", key, "error", err)
	}
}

// Delete removes keys, ignoring a missing cache.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("cache delete failed", "keys", keys, "error", err)
	}
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
