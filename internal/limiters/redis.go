package limiters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrStoreUnavailable indicates the attempt-store backend is unreachable.
// The engine resolves it to a denied login, never a waved-through one.
var ErrStoreUnavailable = errors.New("attempt store backend unavailable")

// RedisStore is a Redis-backed attempt store. The TTL is refreshed on
// every failure so the window tracks the last failure, matching
// MemoryStore semantics; expiry handling is delegated to Redis entirely.
type RedisStore struct {
	redis  redis.UniversalClient
	window time.Duration
}

// NewRedisStore creates a RedisStore with the given reset window.
func NewRedisStore(client redis.UniversalClient, window time.Duration) *RedisStore {
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &RedisStore{redis: client, window: window}
}

func (s *RedisStore) key(clientID string) string {
	return "fla:" + clientID
}

// RecordFailure atomically increments the counter and refreshes the TTL.
func (s *RedisStore) RecordFailure(ctx context.Context, clientID string) (int, error) {
	count, err := s.redis.Incr(ctx, s.key(clientID)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := s.redis.Expire(ctx, s.key(clientID), s.window).Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return int(count), nil
}

// Count returns the current counter. Missing keys read as zero.
func (s *RedisStore) Count(ctx context.Context, clientID string) (int, error) {
	count, err := s.redis.Get(ctx, s.key(clientID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if count < 0 {
		return 0, nil
	}
	return int(count), nil
}

// Reset deletes the counter unconditionally.
func (s *RedisStore) Reset(ctx context.Context, clientID string) error {
	if err := s.redis.Del(ctx, s.key(clientID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
