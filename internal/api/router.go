package api

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/user-console/docs"
	"github.com/99minutos/user-console/internal/api/console"
	"github.com/99minutos/user-console/internal/api/handler"
	"github.com/99minutos/user-console/internal/api/middleware"
	"github.com/99minutos/user-console/internal/core/service"
	"github.com/99minutos/user-console/internal/core/view"
)

// Deps are the collaborators the console routes need.
type Deps struct {
	Factory  *console.Factory
	Identity middleware.IdentityConfig
	Log      zerolog.Logger
}

// Register mounts the console routes on e, which already carries the global
// middleware and the ops endpoints.
func Register(e *echo.Echo, deps Deps) error {
	renderer, err := handler.NewRenderer()
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Docs ---
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Dependencies ---
	fv := view.NewFormValidator()
	guard := view.Guard{LoginPath: service.RouteLogin}
	loginHandler := handler.NewLoginHandler(fv)
	usersHandler := handler.NewUsersHandler()
	editHandler := handler.NewEditHandler(fv)
	apiHandler := handler.NewAPIHandler()

	// Every route below knows which browser it serves.
	web := e.Group("", middleware.Identity(deps.Identity))
	pages := web.Group("", middleware.Console(deps.Factory))

	// --- Public pages ---
	pages.GET("/", loginHandler.Show)
	pages.POST("/login", loginHandler.Submit)
	pages.POST("/logout", loginHandler.Logout)

	// --- Protected pages ---
	users := pages.Group("/users", middleware.RequireAuth(guard))
	users.GET("", usersHandler.List)
	users.POST("/:id/delete", usersHandler.Delete)
	users.GET("/:id/edit", editHandler.Show)
	users.POST("/:id/edit", editHandler.Update)

	// --- JSON API ---
	v1 := web.Group("/api/v1", middleware.ConsoleJSON(deps.Factory))
	v1.GET("/session", apiHandler.Session)
	v1.GET("/users", apiHandler.Users, middleware.RequireAuthJSON(guard))
	v1.RouteNotFound("/*", notFound)

	pages.RouteNotFound("/*", notFound)

	return nil
}

// notFound answers unknown routes with the JSON envelope under /api/ and the
// not-found page elsewhere.
func notFound(c echo.Context) error {
	if wantsJSON(c) {
		return echo.ErrNotFound
	}
	return handler.NotFound(c)
}
