package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-console/internal/api/console"
	"github.com/99minutos/user-console/internal/api/metrics"
	"github.com/99minutos/user-console/internal/core/domain"
	"github.com/99minutos/user-console/internal/core/view"
)

// RequireAuth evaluates the route guard before the wrapped handler runs.
// Unauthenticated visitors are redirected to the login page and nothing of
// the protected view is rendered.
func RequireAuth(guard view.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			con, _ := console.From(c)
			var session view.Authenticator
			if con != nil {
				session = con.Session
			}

			decision := guard.Evaluate(session)
			if decision.State != view.GuardAuthorized {
				metrics.GuardRedirectsTotal.Inc()
				return c.Redirect(http.StatusSeeOther, decision.Redirect)
			}
			return next(c)
		}
	}
}

// RequireAuthJSON is RequireAuth for the JSON API: it answers 401 instead of
// redirecting.
func RequireAuthJSON(guard view.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			con, _ := console.From(c)
			var session view.Authenticator
			if con != nil {
				session = con.Session
			}

			if guard.Evaluate(session).State != view.GuardAuthorized {
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			}
			return next(c)
		}
	}
}
