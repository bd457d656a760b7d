package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-console/internal/api/console"
	"github.com/99minutos/user-console/internal/core/domain"
	"github.com/99minutos/user-console/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names known to the Renderer.
const (
	PageLogin    = "login"
	PageUsers    = "users"
	PageEdit     = "edit"
	PageNotFound = "notfound"
	PageError    = "error"
)

var pageNames = []string{PageLogin, PageUsers, PageEdit, PageNotFound, PageError}

// Page is the data handed to the layout. Body is the page-specific view model.
type Page struct {
	Title   string
	ShowNav bool
	Flashes []domain.Notification
	Body    any
}

// Renderer renders the console pages inside the shared layout. It
// implements echo.Renderer.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"add":   func(a, b int) int { return a + b },
		"sub":   func(a, b int) int { return a - b },
		"lower": strings.ToLower,
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("renderer: parse %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("renderer: unknown page %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

// render wraps body in a Page, draining the browser's pending flashes so
// they are shown exactly once.
func render(c echo.Context, code int, name, title string, body any) error {
	page := Page{Title: title, Body: body}
	if con, ok := console.From(c); ok {
		page.ShowNav = con.Session.IsAuthenticated()
		if con.Flashes != nil {
			flashes, err := con.Flashes.Drain(c.Request().Context())
			if err != nil {
				log := logger.Component("handler")
				log.Warn().Err(err).Str("console_id", con.ID).Msg("flash drain failed")
			}
			page.Flashes = flashes
		}
	}
	return c.Render(code, name, page)
}
