package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/user-console/internal/core/domain"
	"github.com/99minutos/user-console/internal/core/ports"
)

// Console routes the session navigates to.
const (
	RouteLogin = "/"
	RouteUsers = "/users"
)

const (
	msgLoginSuccess  = "Login successful!"
	msgLoginFailed   = "Failed to login"
	msgLoginError    = "Login failed"
	msgLoginBusy     = "A login is already in progress"
	msgLoggedOut     = "You have been logged out"
	msgSessionFailed = "Could not save your session"
)

// SessionDeps groups the collaborators of a SessionService.
type SessionDeps struct {
	Auth      ports.AuthGateway
	Storage   ports.TokenStorage
	Latch     ports.LoginLatch // optional
	Notifier  ports.Notifier
	Navigator ports.Navigator
	Audit     ports.AuditRecorder // optional
	ConsoleID string
	Log       zerolog.Logger
}

// SessionService owns the token of one browser. The token is restored from
// durable storage on construction and written back on every transition.
type SessionService struct {
	deps SessionDeps

	mu      sync.RWMutex
	token   string
	loading bool
}

// NewSessionService builds the session and restores any stored token. A
// storage failure leaves the session unauthenticated.
func NewSessionService(ctx context.Context, deps SessionDeps) *SessionService {
	s := &SessionService{deps: deps}
	token, ok, err := deps.Storage.Load(ctx)
	if err != nil {
		deps.Log.Warn().Err(err).Str("console_id", deps.ConsoleID).Msg("session restore failed")
		return s
	}
	if ok {
		s.token = token
	}
	return s
}

// Login exchanges credentials for a token. Failures are notified and
// returned; the token stays unset and no navigation happens.
func (s *SessionService) Login(ctx context.Context, email, password string) error {
	if s.deps.Latch != nil {
		acquired, err := s.deps.Latch.Acquire(ctx)
		switch {
		case err != nil:
			s.deps.Log.Warn().Err(err).Str("console_id", s.deps.ConsoleID).Msg("login latch unavailable, continuing")
		case !acquired:
			s.notify(ctx, domain.LevelError, msgLoginBusy)
			return domain.ErrLoginInFlight
		default:
			defer func() {
				if err := s.deps.Latch.Release(context.WithoutCancel(ctx)); err != nil {
					s.deps.Log.Warn().Err(err).Str("console_id", s.deps.ConsoleID).Msg("login latch release failed")
				}
			}()
		}
	}

	s.setLoading(true)
	defer s.setLoading(false)

	token, err := s.deps.Auth.Login(ctx, email, password)
	if err == nil && token == "" {
		err = &domain.RemoteError{Op: "login", Kind: domain.KindHTTP, Err: domain.ErrLogin}
	}
	if err != nil {
		s.notify(ctx, domain.LevelError, loginFailureMessage(err))
		s.deps.Log.Error().Err(err).Str("console_id", s.deps.ConsoleID).Msg("login error")
		s.record(domain.ActionLogin, domain.OutcomeFailure, err.Error())
		return err
	}

	if err := s.deps.Storage.Save(ctx, token); err != nil {
		s.notify(ctx, domain.LevelError, msgSessionFailed)
		s.deps.Log.Error().Err(err).Str("console_id", s.deps.ConsoleID).Msg("session persist failed")
		return err
	}
	s.setToken(token)

	s.notify(ctx, domain.LevelSuccess, msgLoginSuccess)
	s.record(domain.ActionLogin, domain.OutcomeSuccess, "")
	s.deps.Navigator.Navigate(domain.Navigation{Path: RouteUsers})
	return nil
}

// Logout forgets the token locally and in storage, then returns to the login
// route. It never calls the remote service.
func (s *SessionService) Logout(ctx context.Context) {
	s.setToken("")
	if err := s.deps.Storage.Clear(ctx); err != nil {
		s.deps.Log.Error().Err(err).Str("console_id", s.deps.ConsoleID).Msg("session clear failed")
	}
	s.record(domain.ActionLogout, domain.OutcomeSuccess, "")
	s.deps.Navigator.Navigate(domain.Navigation{Path: RouteLogin, Replace: true})
	s.notify(ctx, domain.LevelInfo, msgLoggedOut)
}

func (s *SessionService) IsAuthenticated() bool {
	return s.Session().IsAuthenticated()
}

// IsLoading reports a login in flight, either here or in another request of
// the same browser.
func (s *SessionService) IsLoading(ctx context.Context) bool {
	s.mu.RLock()
	loading := s.loading
	s.mu.RUnlock()
	if loading || s.deps.Latch == nil {
		return loading
	}
	held, err := s.deps.Latch.Held(ctx)
	if err != nil {
		return false
	}
	return held
}

func (s *SessionService) Token() string {
	return s.Session().Token
}

// Session returns a snapshot of the session state.
func (s *SessionService) Session() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Session{Token: s.token}
}

func (s *SessionService) setToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *SessionService) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *SessionService) notify(ctx context.Context, level domain.NotificationLevel, msg string) {
	s.deps.Notifier.Notify(ctx, domain.Notification{Level: level, Message: msg})
}

func (s *SessionService) record(action, outcome, detail string) {
	if s.deps.Audit == nil {
		return
	}
	s.deps.Audit.Record(domain.AuditEvent{
		ConsoleID: s.deps.ConsoleID,
		Action:    action,
		Outcome:   outcome,
		Detail:    detail,
		At:        time.Now().UTC(),
	})
}

// loginFailureMessage prefers the server's reason, then a status-based
// fallback, then a generic one for transport failures.
func loginFailureMessage(err error) string {
	if reason := domain.ReasonOf(err); reason != "" {
		return reason
	}
	var re *domain.RemoteError
	if errors.As(err, &re) && re.Kind == domain.KindHTTP {
		return msgLoginFailed
	}
	return msgLoginError
}
