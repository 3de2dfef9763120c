package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrMiss is returned by GetBytes when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// RedisClient represents the Redis client
type RedisClient struct {
	*redis.Client
}

// NewRedisClient creates a new Redis client and pings it.
func NewRedisClient(opts Options) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	log.Printf("Successfully connected to Redis at %s", opts.Addr)
	return &RedisClient{client}, nil
}

// Close closes the Redis connection
func (rc *RedisClient) Close() error {
	return rc.Client.Close()
}

// SetBytes stores a raw value with expiration.
func (rc *RedisClient) SetBytes(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	return rc.Set(ctx, key, value, expiration).Err()
}

// GetBytes loads a raw value. Absent keys return ErrMiss.
func (rc *RedisClient) GetBytes(ctx context.Context, key string) ([]byte, error) {
	data, err := rc.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}
	return data, nil
}

// GenerateCatalogCacheKey generates a cache key for a catalog read, e.g.
// catalog:hotel-content:101.
func GenerateCatalogCacheKey(route string, params ...string) string {
	if len(params) == 0 {
		return fmt.Sprintf("catalog:%s", route)
	}
	return fmt.Sprintf("catalog:%s:%s", route, strings.Join(params, ":"))
}
