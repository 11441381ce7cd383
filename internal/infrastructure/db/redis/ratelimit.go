package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	attemptWindow = 15 * time.Minute
	maxAttempts   = 10
)

// LoginLimiter throttles repeated failed logins per identity with a
// fixed-window counter. Key format: login_attempts:<identity>
type LoginLimiter struct {
	client *redis.Client
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	return &LoginLimiter{client: client}
}

// TooManyAttempts reports whether the identity has exhausted its window.
func (l *LoginLimiter) TooManyAttempts(ctx context.Context, identity string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(identity)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("login limiter check: %w", err)
	}
	return n >= maxAttempts, nil
}

// RecordFailure counts one failed attempt; the first failure opens the window.
func (l *LoginLimiter) RecordFailure(ctx context.Context, identity string) error {
	key := l.key(identity)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, attemptWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("login limiter record: %w", err)
	}
	return nil
}

// Reset clears the window after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, identity string) error {
	return l.client.Del(ctx, l.key(identity)).Err()
}

func (l *LoginLimiter) key(identity string) string {
	return "login_attempts:" + identity
}
