package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/9rib/marketplace-api/internal/api/metrics"
)

const defaultCacheTTL = 10 * time.Minute

// JSONCache stores JSON encoded values under plain string keys.
type JSONCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewJSONCache creates a JSONCache. If ttl <= 0, defaultCacheTTL is used.
func NewJSONCache(client *redis.Client, ttl time.Duration) *JSONCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &JSONCache{client: client, ttl: ttl}
}

// Get decodes the value stored at key into dst. A missing key is not an error.
func (c *JSONCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheLookupsTotal.WithLabelValues(key, "miss").Inc()
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	metrics.CacheLookupsTotal.WithLabelValues(key, "hit").Inc()
	return true, nil
}

func (c *JSONCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

// Invalidate removes keys. Missing keys are ignored.
func (c *JSONCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
