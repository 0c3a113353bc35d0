package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces dashboard fragments in Redis.
const DefaultKeyPrefix = "naqd:dashboard:"

// Cache stores rendered fragments per customer.
type Cache interface {
	// Get returns the cached fragment and whether it was present.
	Get(ctx context.Context, customer string) (string, bool, error)
	Set(ctx context.Context, customer, html string) error
	Invalidate(ctx context.Context, customers ...string) error
}

// NoopCache never stores anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (NoopCache) Set(context.Context, string, string) error          { return nil }
func (NoopCache) Invalidate(context.Context, ...string) error        { return nil }

// RedisConfig holds Redis connection and expiry settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

// RedisCache implements Cache on a Redis server.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Addr, err)
	}
	return NewRedisCacheWithClient(client, cfg.Prefix, cfg.TTL), nil
}

// NewRedisCacheWithClient wraps an existing client. An empty prefix uses
// DefaultKeyPrefix; a zero ttl keeps entries until invalidated.
func NewRedisCacheWithClient(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisCache) key(customer string) string {
	return r.prefix + customer
}

func (r *RedisCache) Get(ctx context.Context, customer string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.key(customer)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *RedisCache) Set(ctx context.Context, customer, html string) error {
	return r.client.Set(ctx, r.key(customer), html, r.ttl).Err()
}

func (r *RedisCache) Invalidate(ctx context.Context, customers ...string) error {
	keys := make([]string, 0, len(customers))
	for _, c := range customers {
		if c != "" {
			keys = append(keys, r.key(c))
		}
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
