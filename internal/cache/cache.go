package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DivyanshSaharan/ContestTrack/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis. Redis is optional: with no host
// configured it returns (nil, nil) and callers fall back to direct DB reads.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Host == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

func CloseRedisClient(client *redis.Client) error {
	if client == nil {
		return nil
	}
	return client.Close()
}

// Cache is a nil-safe JSON cache over Redis for read-heavy contest queries.
// Every method degrades to a miss/no-op when the client is absent.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
	}
}

// GetJSON unmarshals the cached value for key into out. ok is false on a
// miss, an absent client, or a stale unparseable entry.
func (c *Cache) GetJSON(ctx context.Context, key string, out interface{}) (ok bool) {
	if c == nil || c.client == nil {
		return false
	}

	// Cache errors are never fatal; the caller just hits the database.
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		c.client.Del(ctx, key)
		return false
	}

	return true
}

// SetJSON stores value under key for the configured TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	c.client.Set(ctx, key, data, c.ttl)
}

// Invalidate removes keys, used after a manual import refresh.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}

	c.client.Del(ctx, keys...)
}
