// Package cache wraps Redis for caching computed leaderboard and analytics
// responses. Cache misses and Redis outages are soft failures: callers fall
// back to recomputing from Postgres.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrMiss is returned when a key is absent or Redis is unreachable.
var ErrMiss = errors.New("cache miss")

// Cache is a thin JSON-value cache over a Redis client.
type Cache struct {
	client *redis.Client
	logger *zap.SugaredLogger
}

// New connects to Redis using a redis:// URL and verifies connectivity.
func New(redisURL string, logger *zap.SugaredLogger) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Cache{client: client, logger: logger}, nil
}

// GetJSON loads a cached value into dest. Returns ErrMiss when the key is
// absent; Redis errors are logged and also surface as ErrMiss so callers
// degrade to recomputation.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrMiss
	}
	if err != nil {
		c.logger.Warnw("Cache read failed", "key", key, "error", err)
		return ErrMiss
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warnw("Cache entry corrupt, dropping", "key", key, "error", err)
		c.client.Del(ctx, key)
		return ErrMiss
	}
	return nil
}

// SetJSON stores a value as JSON with a TTL. Failures are logged, never
// propagated — a cold cache is not an error condition.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warnw("Cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.logger.Warnw("Cache write failed", "key", key, "error", err)
	}
}

// Invalidate removes keys, typically after a write lands in their scope.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warnw("Cache invalidation failed", "keys", keys, "error", err)
	}
}

// Ping reports Redis reachability for the readiness probe.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}
