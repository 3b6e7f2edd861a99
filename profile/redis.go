package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultTTL is how long cached profiles live; a candidate's profile rarely
// changes within a single interview window.
const defaultTTL = 24 * time.Hour

// RedisCache is a Redis-backed implementation of Cache.
// It also satisfies Source for deployments that keep profiles in Redis itself.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// RedisOption configures a RedisCache.
type RedisOption func(*RedisCache)

// WithTTL sets the time-to-live for cached profiles.
// Default is 24 hours. Set to 0 for no expiration.
func WithTTL(ttl time.Duration) RedisOption {
	return func(c *RedisCache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix for Redis keys.
// Default is "interviewkit".
func WithPrefix(prefix string) RedisOption {
	return func(c *RedisCache) {
		c.prefix = prefix
	}
}

// NewRedisCache creates a new Redis-backed profile cache.
//
// Example:
//
//	cache := NewRedisCache(
//	    redis.NewClient(&redis.Options{Addr: "localhost:6379"}),
//	    WithTTL(time.Hour),
//	)
func NewRedisCache(client *redis.Client, opts ...RedisOption) *RedisCache {
	c := &RedisCache{
		client: client,
		ttl:    defaultTTL,
		prefix: "interviewkit",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisCache) key(candidateID string) string {
	return c.prefix + ":profile:" + candidateID
}

// Get returns the cached profile text, or ErrNotFound on a miss.
func (c *RedisCache) Get(ctx context.Context, candidateID string) (string, error) {
	if candidateID == "" {
		return "", ErrInvalidID
	}

	text, err := c.client.Get(ctx, c.key(candidateID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return text, nil
}

// Put stores profile text with the configured TTL.
func (c *RedisCache) Put(ctx context.Context, candidateID, text string) error {
	if candidateID == "" {
		return ErrInvalidID
	}
	if err := c.client.Set(ctx, c.key(candidateID), text, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// FetchProfile lets a RedisCache double as a Source.
func (c *RedisCache) FetchProfile(ctx context.Context, candidateID string) (string, error) {
	return c.Get(ctx, candidateID)
}
