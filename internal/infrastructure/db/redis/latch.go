package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// latchTTL bounds how long a crashed login can block the next one.
const latchTTL = 30 * time.Second

// LoginLatch marks a login in flight for one browser, so a repeated submit
// from another tab or a double click is refused.
type LoginLatch struct {
	client    redis.Cmdable
	consoleID string
}

// NewLoginLatch creates a LoginLatch wrapping the given Redis client.
func NewLoginLatch(client redis.Cmdable, consoleID string) *LoginLatch {
	return &LoginLatch{client: client, consoleID: consoleID}
}

// Acquire reports false when another login holds the latch.
func (l *LoginLatch) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(), "1", latchTTL).Result()
	if err != nil {
		return false, fmt.Errorf("login latch acquire: %w", err)
	}
	return ok, nil
}

func (l *LoginLatch) Release(ctx context.Context) error {
	return l.client.Del(ctx, l.key()).Err()
}

// Held reports whether a login is currently in flight.
func (l *LoginLatch) Held(ctx context.Context) (bool, error) {
	n, err := l.client.Exists(ctx, l.key()).Result()
	if err != nil {
		return false, fmt.Errorf("login latch check: %w", err)
	}
	return n > 0, nil
}

func (l *LoginLatch) key() string {
	return keyspace(l.consoleID, "login")
}
