package ports

import "context"

// TokenStorage is the durable per-browser home of the session token.
// Load reports ok=false when no token is stored.
type TokenStorage interface {
	Load(ctx context.Context) (token string, ok bool, err error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// LoginLatch marks a login as in flight for one browser.
// Acquire returns false when a login is already running.
type LoginLatch interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
	Held(ctx context.Context) (bool, error)
}
