package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit"

// RedisStore keeps windows in Redis. INCR is atomic server-side, so
// concurrent same-key increments never undercount. Intended for deployments
// where counters should survive a process restart; cross-instance
// coordination is out of scope.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	k := s.key(key)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	// ExpireNX only arms the timer on a fresh window; an existing window
	// keeps its original reset time.
	pipe.ExpireNX(ctx, k, window)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, fmt.Errorf("ratelimit incr: %w", err)
	}

	return int(incr.Val()), time.Now().Add(ttl.Val()), nil
}

func (s *RedisStore) Peek(ctx context.Context, key string) (int, time.Time, error) {
	k := s.key(key)

	pipe := s.client.TxPipeline()
	get := pipe.Get(ctx, k)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		if err == redis.Nil {
			return 0, time.Time{}, nil
		}
		return 0, time.Time{}, fmt.Errorf("ratelimit peek: %w", err)
	}

	count, err := get.Int()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("ratelimit peek: %w", err)
	}
	return count, time.Now().Add(ttl.Val()), nil
}

func (s *RedisStore) key(key string) string {
	return fmt.Sprintf("%s:%s", redisKeyPrefix, key)
}
