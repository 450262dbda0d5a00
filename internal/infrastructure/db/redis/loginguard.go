package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginGuard counts failed logins per username in Redis and blocks further
// attempts once the counter reaches the configured maximum. Counters expire
// after the window, so a block always clears itself.
// Key format: login:fail:<username>
type LoginGuard struct {
	client      *redis.Client
	maxFailures int
	window      time.Duration
}

// NewLoginGuard creates a LoginGuard wrapping the given Redis client.
func NewLoginGuard(client *redis.Client, maxFailures int, window time.Duration) *LoginGuard {
	if maxFailures <= 0 {
		maxFailures = 10
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginGuard{client: client, maxFailures: maxFailures, window: window}
}

// Blocked reports whether the username has exhausted its attempts.
func (g *LoginGuard) Blocked(ctx context.Context, username string) (bool, error) {
	n, err := g.client.Get(ctx, g.key(username)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("login guard check: %w", err)
	}
	return n >= g.maxFailures, nil
}

// RecordFailure bumps the failure counter and refreshes its expiry.
func (g *LoginGuard) RecordFailure(ctx context.Context, username string) error {
	key := g.key(username)

	pipe := g.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, g.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("login guard record: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (g *LoginGuard) Reset(ctx context.Context, username string) error {
	return g.client.Del(ctx, g.key(username)).Err()
}

func (g *LoginGuard) key(username string) string {
	return "login:fail:" + username
}
