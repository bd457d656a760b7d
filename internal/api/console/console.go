// Package console assembles the per-browser collaborators used while serving
// one request: the session, the user service, the flash queue and a
// navigator that records where the request should end up.
package console

import (
	"context"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/user-console/internal/core/domain"
	"github.com/99minutos/user-console/internal/core/ports"
	"github.com/99minutos/user-console/internal/core/service"
	rdb "github.com/99minutos/user-console/internal/infrastructure/db/redis"
)

const contextKey = "console"

// Flashes drains the notifications waiting for the next render.
type Flashes interface {
	Drain(ctx context.Context) ([]domain.Notification, error)
}

// Console is everything a handler needs to act on behalf of one browser.
type Console struct {
	ID       string
	Session  ports.SessionService
	Users    ports.UserService
	Notifier ports.Notifier
	Flashes  Flashes
	Nav      *Navigator
}

// Navigator records the last navigation requested during a request. It
// implements ports.Navigator.
type Navigator struct {
	mu      sync.Mutex
	pending *domain.Navigation
}

func (n *Navigator) Navigate(nav domain.Navigation) {
	n.mu.Lock()
	n.pending = &nav
	n.mu.Unlock()
}

// Pending returns the recorded navigation, if any.
func (n *Navigator) Pending() (domain.Navigation, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.pending == nil {
		return domain.Navigation{}, false
	}
	return *n.pending, true
}

// Factory builds a Console for a browser id.
type Factory struct {
	Users      ports.UserGateway
	Auth       ports.AuthGateway
	Redis      redis.Cmdable
	Audit      ports.AuditRecorder
	SessionTTL time.Duration
	Log        zerolog.Logger
}

// Build wires the collaborators for consoleID and restores its session.
func (f *Factory) Build(ctx context.Context, consoleID string) *Console {
	return f.build(ctx, consoleID, false)
}

// BuildAPI is Build for JSON clients. Their failures travel in the response
// body, so the user service queues no flashes for a later page.
func (f *Factory) BuildAPI(ctx context.Context, consoleID string) *Console {
	return f.build(ctx, consoleID, true)
}

func (f *Factory) build(ctx context.Context, consoleID string, api bool) *Console {
	log := f.Log.With().Str("console_id", consoleID).Logger()
	flashes := rdb.NewFlashQueue(f.Redis, consoleID, log)
	nav := &Navigator{}

	session := service.NewSessionService(ctx, service.SessionDeps{
		Auth:      f.Auth,
		Storage:   rdb.NewTokenStore(f.Redis, consoleID, f.SessionTTL),
		Latch:     rdb.NewLoginLatch(f.Redis, consoleID),
		Notifier:  flashes,
		Navigator: nav,
		Audit:     f.Audit,
		ConsoleID: consoleID,
		Log:       log,
	})

	var userNotifier ports.Notifier = flashes
	if api {
		userNotifier = discardNotifier{}
	}

	return &Console{
		ID:       consoleID,
		Session:  session,
		Users:    service.NewUserService(f.Users, userNotifier, f.Audit, consoleID, log),
		Notifier: flashes,
		Flashes:  flashes,
		Nav:      nav,
	}
}

type discardNotifier struct{}

func (discardNotifier) Notify(context.Context, domain.Notification) {}

// Set stores con on the echo context.
func Set(c echo.Context, con *Console) {
	c.Set(contextKey, con)
}

// From returns the Console stored by Set.
func From(c echo.Context) (*Console, bool) {
	con, ok := c.Get(contextKey).(*Console)
	return con, ok && con != nil
}
