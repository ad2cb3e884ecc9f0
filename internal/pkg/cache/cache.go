// Package cache is a fail-open read-through layer over Redis. Cache errors
// never gate the correctness path: a failed read is a miss, a failed write
// is a no-op, and a nil *Cache disables caching entirely.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL tiers. Token validity tolerates only minutes of staleness; aggregate
// reports tolerate tens of minutes.
const (
	TokenTTL  = 5 * time.Minute
	ReportTTL = 30 * time.Minute
)

type Config struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type Cache struct {
	client *redis.Client
}

// New connects to Redis. Returns nil when disabled; a nil *Cache is a valid
// pass-through receiver for every method.
func New(cfg Config) (*Cache, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Cache{client: client}, nil
}

// GetJSON loads the key into dest. Returns false on miss or any backend error.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("cache get failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		slog.Warn("cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

// SetJSON stores the value with a TTL. Failures are logged and dropped.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		slog.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		slog.Warn("cache set failed", "key", key, "error", err)
	}
}

// Delete removes the key. Used for immediate invalidation on write; TTL
// expiry alone is not enough for token state.
func (c *Cache) Delete(ctx context.Context, key string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		slog.Warn("cache delete failed", "key", key, "error", err)
	}
}

// Health checks the backend connection.
func (c *Cache) Health(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close closes the backend connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// TokenKey is the cache key for one token's validity.
func TokenKey(value string) string {
	return "token:" + value
}

// ReportKey derives a key from a report's query identity: kind plus every
// parameter that changes the result.
func ReportKey(kind string, params ...string) string {
	if len(params) == 0 {
		return "report:" + kind
	}
	return "report:" + kind + ":" + strings.Join(params, ":")
}
