package view

import (
	"context"
	"sync"

	"github.com/99minutos/user-console/internal/core/domain"
	"github.com/99minutos/user-console/internal/core/ports"
)

// Demo credentials accepted by the reference backend.
const (
	DemoEmail    = "eve.holt@reqres.in"
	DemoPassword = "cityslicka"
)

var loginFields = []string{domain.FieldEmail, domain.FieldPassword}

// LoginState is a snapshot of the login form.
type LoginState struct {
	Email    string
	Password string
	Errors   domain.FieldErrors
	// Busy disables the submit control while a login is in flight.
	Busy bool
}

// LoginController collects credentials and hands valid ones to the session.
type LoginController struct {
	session   ports.SessionService
	validator *FormValidator

	mu    sync.Mutex
	creds domain.Credentials
	errs  domain.FieldErrors
}

// NewLoginController pre-fills the demo credentials.
func NewLoginController(session ports.SessionService, fv *FormValidator) *LoginController {
	if fv == nil {
		fv = NewFormValidator()
	}
	return &LoginController{
		session:   session,
		validator: fv,
		creds:     domain.Credentials{Email: DemoEmail, Password: DemoPassword},
		errs:      emptyErrors(loginFields),
	}
}

func (c *LoginController) SetEmail(email string) {
	c.mu.Lock()
	c.creds.Email = email
	c.mu.Unlock()
}

func (c *LoginController) SetPassword(password string) {
	c.mu.Lock()
	c.creds.Password = password
	c.mu.Unlock()
}

// Validate recomputes the field errors.
func (c *LoginController) Validate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = c.validator.Check(c.creds, loginFields...)
	return c.errs.Empty()
}

// Submit delegates valid credentials to the session. Invalid ones are
// rejected with domain.ErrValidation before any network call.
func (c *LoginController) Submit(ctx context.Context) error {
	if !c.Validate() {
		return domain.ErrValidation
	}
	c.mu.Lock()
	creds := c.creds
	c.mu.Unlock()
	return c.session.Login(ctx, creds.Email, creds.Password)
}

func (c *LoginController) State(ctx context.Context) LoginState {
	c.mu.Lock()
	errs := make(domain.FieldErrors, len(c.errs))
	for k, v := range c.errs {
		errs[k] = v
	}
	state := LoginState{Email: c.creds.Email, Password: c.creds.Password, Errors: errs}
	c.mu.Unlock()
	state.Busy = c.session.IsLoading(ctx)
	return state
}
