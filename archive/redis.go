package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultTTL keeps archived sessions around for a day before cleanup.
const defaultTTL = 24 * time.Hour

// RedisSink stores the latest snapshot per session as JSON with a TTL.
type RedisSink struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// RedisOption configures a RedisSink.
type RedisOption func(*RedisSink)

// WithTTL sets the time-to-live for archived snapshots.
// Default is 24 hours. Set to 0 for no expiration.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisSink) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for Redis keys.
// Default is "interviewkit".
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisSink) {
		s.prefix = prefix
	}
}

// NewRedisSink creates a Redis-backed snapshot sink.
func NewRedisSink(client *redis.Client, opts ...RedisOption) *RedisSink {
	s := &RedisSink{
		client: client,
		ttl:    defaultTTL,
		prefix: "interviewkit",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisSink) key(sessionID string) string {
	return s.prefix + ":archive:" + sessionID
}

// Write implements Sink.
func (s *RedisSink) Write(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key(snap.SessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Load reads back the latest snapshot for a session. Mainly used by tests and
// operational tooling; the interview core itself never reads the archive.
func (s *RedisSink) Load(ctx context.Context, sessionID string) (Snapshot, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		return Snapshot{}, fmt.Errorf("redis get failed: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snap, nil
}
