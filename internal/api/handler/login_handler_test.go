package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/user-console/internal/core/domain"
)

func TestLoginHandler_Show(t *testing.T) {
	e := newTestEcho(t)
	con := newTestConsole(&stubSession{}, &stubUsers{})
	c, rec := newRequest(e, con, http.MethodGet, "/", nil)

	require.NoError(t, NewLoginHandler(nil).Show(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="eve.holt@reqres.in"`)
	assert.Contains(t, rec.Body.String(), "Demo credentials")
	assert.NotContains(t, rec.Body.String(), "Logout")
}

func TestLoginHandler_Submit_Success(t *testing.T) {
	e := newTestEcho(t)
	session := &stubSession{}
	con := newTestConsole(session, &stubUsers{})
	session.loginFn = func(ctx context.Context, email, password string) error {
		assert.Equal(t, "eve.holt@reqres.in", email)
		assert.Equal(t, "cityslicka", password)
		con.Nav.Navigate(domain.Navigation{Path: "/users"})
		return nil
	}
	form := url.Values{"email": {"eve.holt@reqres.in"}, "password": {"cityslicka"}}
	c, rec := newRequest(e, con, http.MethodPost, "/login", form)

	require.NoError(t, NewLoginHandler(nil).Submit(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/users", rec.Header().Get("Location"))
}

func TestLoginHandler_Submit_Invalid(t *testing.T) {
	e := newTestEcho(t)
	con := newTestConsole(&stubSession{loginFn: func(context.Context, string, string) error {
		t.Fatalf("invalid form must not reach the session")
		return nil
	}}, &stubUsers{})
	form := url.Values{"email": {"eve.holt"}, "password": {""}}
	c, rec := newRequest(e, con, http.MethodPost, "/login", form)

	require.NoError(t, NewLoginHandler(nil).Submit(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email is invalid")
	assert.Contains(t, rec.Body.String(), "Password is required")
	assert.Contains(t, rec.Body.String(), `value="eve.holt"`)
}

func TestLoginHandler_Submit_Rejected(t *testing.T) {
	e := newTestEcho(t)
	session := &stubSession{}
	con := newTestConsole(session, &stubUsers{})
	session.loginFn = func(ctx context.Context, _, _ string) error {
		con.Notifier.Notify(ctx, domain.Notification{Level: domain.LevelError, Message: "user not found"})
		return domain.ErrLogin
	}
	form := url.Values{"email": {"nobody@reqres.in"}, "password": {"x"}}
	c, rec := newRequest(e, con, http.MethodPost, "/login", form)

	require.NoError(t, NewLoginHandler(nil).Submit(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "user not found")
	assert.Contains(t, rec.Body.String(), "flash-error")
}

func TestLoginHandler_Submit_InFlight(t *testing.T) {
	e := newTestEcho(t)
	con := newTestConsole(&stubSession{loginFn: func(context.Context, string, string) error {
		return domain.ErrLoginInFlight
	}}, &stubUsers{})
	form := url.Values{"email": {"eve.holt@reqres.in"}, "password": {"cityslicka"}}
	c, rec := newRequest(e, con, http.MethodPost, "/login", form)

	require.NoError(t, NewLoginHandler(nil).Submit(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginHandler_Logout(t *testing.T) {
	e := newTestEcho(t)
	session := &stubSession{authenticated: true}
	con := newTestConsole(session, &stubUsers{})
	session.logoutFn = func(context.Context) {
		session.authenticated = false
		con.Nav.Navigate(domain.Navigation{Path: "/", Replace: true})
	}
	c, rec := newRequest(e, con, http.MethodPost, "/logout", url.Values{})

	require.NoError(t, NewLoginHandler(nil).Logout(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.False(t, session.authenticated)
}

func TestLoginHandler_MissingConsole(t *testing.T) {
	e := newTestEcho(t)
	c, _ := newRequest(e, nil, http.MethodGet, "/", nil)

	assert.Error(t, NewLoginHandler(nil).Show(c))
}
