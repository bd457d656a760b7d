package handler

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/user-console/internal/api/console"
	"github.com/99minutos/user-console/internal/core/domain"
)

type stubSession struct {
	loginFn       func(ctx context.Context, email, password string) error
	logoutFn      func(ctx context.Context)
	authenticated bool
}

func (s *stubSession) Login(ctx context.Context, email, password string) error {
	return s.loginFn(ctx, email, password)
}

func (s *stubSession) Logout(ctx context.Context) {
	if s.logoutFn != nil {
		s.logoutFn(ctx)
	}
}

func (s *stubSession) IsAuthenticated() bool { return s.authenticated }

func (s *stubSession) IsLoading(context.Context) bool { return false }

func (s *stubSession) Token() string { return "" }

type stubUsers struct {
	listFn   func(ctx context.Context, page int) (*domain.UserPage, error)
	getFn    func(ctx context.Context, id int) (*domain.User, error)
	updateFn func(ctx context.Context, id int, update domain.UserUpdate) (*domain.User, error)
	deleteFn func(ctx context.Context, id int) error
}

func (s *stubUsers) ListUsers(ctx context.Context, page int) (*domain.UserPage, error) {
	return s.listFn(ctx, page)
}

func (s *stubUsers) GetUser(ctx context.Context, id int) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUsers) UpdateUser(ctx context.Context, id int, update domain.UserUpdate) (*domain.User, error) {
	return s.updateFn(ctx, id, update)
}

func (s *stubUsers) DeleteUser(ctx context.Context, id int) error {
	return s.deleteFn(ctx, id)
}

type stubFlashes struct {
	pending []domain.Notification
}

func (f *stubFlashes) Notify(_ context.Context, n domain.Notification) {
	f.pending = append(f.pending, n)
}

func (f *stubFlashes) Drain(context.Context) ([]domain.Notification, error) {
	out := f.pending
	f.pending = nil
	return out, nil
}

var testUsers = []domain.User{
	{ID: 1, Email: "george.bluth@reqres.in", FirstName: "George", LastName: "Bluth", Avatar: "https://reqres.in/img/faces/1-image.jpg"},
	{ID: 2, Email: "janet.weaver@reqres.in", FirstName: "Janet", LastName: "Weaver", Avatar: "https://reqres.in/img/faces/2-image.jpg"},
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	e := echo.New()
	e.Renderer = r
	e.Validator = NewValidator()
	return e
}

func newTestConsole(session *stubSession, users *stubUsers) *console.Console {
	flashes := &stubFlashes{}
	return &console.Console{
		ID:       "browser-1",
		Session:  session,
		Users:    users,
		Notifier: flashes,
		Flashes:  flashes,
		Nav:      &console.Navigator{},
	}
}

func newRequest(e *echo.Echo, con *console.Console, method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if con != nil {
		console.Set(c, con)
	}
	return c, rec
}
