package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/plumeio/plume/pkg/config"
	"github.com/plumeio/plume/pkg/logging"
)

const namespace = "plume"

// Redis is a redis-backed Cache.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a new redis cache client.
func NewRedis(cfg *config.RedisConfig) (*Redis, error) {
	if !cfg.Enabled {
		logging.GetLogger().Info("Redis cache disabled")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.GetLogger().Info("Redis connection established")

	return &Redis{client: client}, nil
}

// GetOrCompute returns the cached value for key, computing and storing it
// on a miss. Concurrent callers may compute independently on a cold key;
// last write wins, which is harmless for feed pages.
func (c *Redis) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, ErrCacheDisabled
	}

	val, err := c.client.Get(ctx, c.namespaceKey(key)).Bytes()
	if err == nil {
		return val, nil
	}
	if !errors.Is(err, redis.Nil) {
		return nil, err
	}

	val, err = compute(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.client.Set(ctx, c.namespaceKey(key), val, ttl).Err(); err != nil {
		return nil, err
	}
	return val, nil
}

// Delete removes a key from cache.
func (c *Redis) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	return c.client.Del(ctx, c.namespaceKey(key)).Err()
}

// Clear removes every key in the cache namespace.
func (c *Redis) Clear(ctx context.Context) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}

	iter := c.client.Scan(ctx, 0, namespace+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close closes the Redis connection.
func (c *Redis) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Health checks Redis health.
func (c *Redis) Health(ctx context.Context) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	return c.client.Ping(ctx).Err()
}

func (c *Redis) namespaceKey(key string) string {
	return namespace + ":" + key
}
