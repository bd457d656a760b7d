package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenKey is the fixed name the session token is stored under.
const TokenKey = "token"

// TokenStore keeps the raw session token of one browser. The key's absence
// means unauthenticated.
type TokenStore struct {
	client    redis.Cmdable
	consoleID string
	ttl       time.Duration
}

// NewTokenStore scopes a store to consoleID. ttl <= 0 stores without expiry;
// otherwise every Load pushes the expiry ttl into the future.
func NewTokenStore(client redis.Cmdable, consoleID string, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, consoleID: consoleID, ttl: ttl}
}

func (s *TokenStore) Load(ctx context.Context) (string, bool, error) {
	var cmd *redis.StringCmd
	if s.ttl > 0 {
		cmd = s.client.GetEx(ctx, s.key(), s.ttl)
	} else {
		cmd = s.client.Get(ctx, s.key())
	}
	token, err := cmd.Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load token: %w", err)
	}
	return token, token != "", nil
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key(), token, s.ttl).Err(); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

func (s *TokenStore) key() string {
	return keyspace(s.consoleID, TokenKey)
}
