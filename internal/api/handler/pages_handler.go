package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorView struct {
	Code    int
	Message string
}

// NotFound renders the catch-all page for unknown routes.
func NotFound(c echo.Context) error {
	return render(c, http.StatusNotFound, PageNotFound, "Page Not Found", nil)
}

// RenderError renders the generic error page.
func RenderError(c echo.Context, code int, msg string) error {
	if code == http.StatusNotFound {
		return NotFound(c)
	}
	return render(c, code, PageError, "Error", errorView{Code: code, Message: msg})
}
