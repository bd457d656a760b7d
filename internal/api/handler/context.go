package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-console/internal/api/console"
)

// ctxConsole returns the per-browser collaborators attached by the Console
// middleware. A missing console means the middleware chain is misconfigured.
func ctxConsole(c echo.Context) (*console.Console, error) {
	con, ok := console.From(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "missing console")
	}
	return con, nil
}

// followNavigation turns a navigation recorded during the request into a 303
// redirect. It reports false when nothing was recorded.
func followNavigation(c echo.Context, con *console.Console) (bool, error) {
	nav, ok := con.Nav.Pending()
	if !ok {
		return false, nil
	}
	return true, c.Redirect(http.StatusSeeOther, nav.Path)
}
