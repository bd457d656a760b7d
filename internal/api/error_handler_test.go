package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/user-console/internal/api/handler"
	"github.com/99minutos/user-console/internal/core/domain"
)

func newErrorEcho(t *testing.T) *echo.Echo {
	t.Helper()
	r, err := handler.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e := echo.New()
	e.Renderer = r
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
	return e
}

func TestHTTPErrorHandler_JSONUnderAPI(t *testing.T) {
	tests := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.ErrUnauthenticated, http.StatusUnauthorized, "not authenticated"},
		{fmt.Errorf("wrap: %w", domain.ErrFetchUsers), http.StatusBadGateway, "failed to load users"},
		{echo.NewHTTPError(http.StatusBadRequest, "invalid query"), http.StatusBadRequest, "invalid query"},
		{errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range tests {
		t.Run(tc.msg, func(t *testing.T) {
			e := newErrorEcho(t)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			e.HTTPErrorHandler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Error != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, resp.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_HTMLPages(t *testing.T) {
	e := newErrorEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/users/abc/edit", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(domain.ErrInvalidUserID, c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != echo.MIMETextHTMLCharsetUTF8 {
		t.Fatalf("expected html, got %q", ct)
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := newErrorEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.NoContent(http.StatusAccepted)

	e.HTTPErrorHandler(errors.New("late"), c)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("committed response must not change, got %d", rec.Code)
	}
}
