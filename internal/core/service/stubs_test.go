package service

import (
	"context"
	"sync"

	"github.com/99minutos/user-console/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Shared stubs
// ---------------------------------------------------------------------------

type stubGateway struct {
	listFn   func(ctx context.Context, page int) (*domain.UserPage, error)
	getFn    func(ctx context.Context, id int) (*domain.User, error)
	updateFn func(ctx context.Context, id int, update domain.UserUpdate) (*domain.User, error)
	deleteFn func(ctx context.Context, id int) error
}

func (g *stubGateway) ListUsers(ctx context.Context, page int) (*domain.UserPage, error) {
	return g.listFn(ctx, page)
}

func (g *stubGateway) GetUser(ctx context.Context, id int) (*domain.User, error) {
	return g.getFn(ctx, id)
}

func (g *stubGateway) UpdateUser(ctx context.Context, id int, update domain.UserUpdate) (*domain.User, error) {
	return g.updateFn(ctx, id, update)
}

func (g *stubGateway) DeleteUser(ctx context.Context, id int) error {
	return g.deleteFn(ctx, id)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, note domain.Notification) {
	n.mu.Lock()
	n.sent = append(n.sent, note)
	n.mu.Unlock()
}

func (n *recordingNotifier) last() (domain.Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return domain.Notification{}, false
	}
	return n.sent[len(n.sent)-1], true
}

type recordingNavigator struct {
	navs []domain.Navigation
}

func (n *recordingNavigator) Navigate(nav domain.Navigation) {
	n.navs = append(n.navs, nav)
}

type recordingAudit struct {
	events []domain.AuditEvent
}

func (a *recordingAudit) Record(event domain.AuditEvent) {
	a.events = append(a.events, event)
}

type memoryStorage struct {
	token   string
	present bool
	saveErr error
	saves   int
	clears  int
}

func (s *memoryStorage) Load(context.Context) (string, bool, error) {
	return s.token, s.present, nil
}

func (s *memoryStorage) Save(_ context.Context, token string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.token, s.present = token, true
	return nil
}

func (s *memoryStorage) Clear(context.Context) error {
	s.clears++
	s.token, s.present = "", false
	return nil
}

type stubAuth struct {
	loginFn func(ctx context.Context, email, password string) (string, error)
}

func (a *stubAuth) Login(ctx context.Context, email, password string) (string, error) {
	return a.loginFn(ctx, email, password)
}

type stubLatch struct {
	acquired bool
	held     bool
	releases int
}

func (l *stubLatch) Acquire(context.Context) (bool, error) { return l.acquired, nil }

func (l *stubLatch) Release(context.Context) error {
	l.releases++
	return nil
}

func (l *stubLatch) Held(context.Context) (bool, error) { return l.held, nil }
