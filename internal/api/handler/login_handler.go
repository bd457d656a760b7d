package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-console/internal/core/domain"
	"github.com/99minutos/user-console/internal/core/view"
)

// LoginHandler serves the public login page and the session transitions.
type LoginHandler struct {
	validator *view.FormValidator
}

func NewLoginHandler(fv *view.FormValidator) *LoginHandler {
	if fv == nil {
		fv = view.NewFormValidator()
	}
	return &LoginHandler{validator: fv}
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type loginView struct {
	view.LoginState
	DemoEmail    string
	DemoPassword string
}

// Show handles GET / and renders the login form with the demo credentials.
func (h *LoginHandler) Show(c echo.Context) error {
	con, err := ctxConsole(c)
	if err != nil {
		return err
	}
	ctrl := view.NewLoginController(con.Session, h.validator)
	return h.render(c, http.StatusOK, ctrl)
}

// Submit handles POST /login.
//
//	303 → /users on success
//	401 → remote rejected the credentials (reason shown as a flash)
//	409 → another login of this browser is in flight
//	422 → form validation failed, nothing was sent
func (h *LoginHandler) Submit(c echo.Context) error {
	con, err := ctxConsole(c)
	if err != nil {
		return err
	}

	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid login form")
	}

	ctrl := view.NewLoginController(con.Session, h.validator)
	ctrl.SetEmail(form.Email)
	ctrl.SetPassword(form.Password)

	err = ctrl.Submit(c.Request().Context())
	switch {
	case err == nil:
		if redirected, err := followNavigation(c, con); redirected || err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/users")
	case errors.Is(err, domain.ErrValidation):
		return h.render(c, http.StatusUnprocessableEntity, ctrl)
	case errors.Is(err, domain.ErrLoginInFlight):
		return h.render(c, http.StatusConflict, ctrl)
	default:
		return h.render(c, http.StatusUnauthorized, ctrl)
	}
}

// Logout handles POST /logout. It always lands on the login page.
func (h *LoginHandler) Logout(c echo.Context) error {
	con, err := ctxConsole(c)
	if err != nil {
		return err
	}
	con.Session.Logout(c.Request().Context())
	if redirected, err := followNavigation(c, con); redirected || err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *LoginHandler) render(c echo.Context, code int, ctrl *view.LoginController) error {
	return render(c, code, PageLogin, "Login", loginView{
		LoginState:   ctrl.State(c.Request().Context()),
		DemoEmail:    view.DemoEmail,
		DemoPassword: view.DemoPassword,
	})
}
