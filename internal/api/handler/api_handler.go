package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-console/internal/core/domain"
	"github.com/99minutos/user-console/internal/core/view"
)

// APIHandler exposes the console state as JSON.
type APIHandler struct{}

func NewAPIHandler() *APIHandler {
	return &APIHandler{}
}

type sessionResponse struct {
	Authenticated bool `json:"authenticated"`
	Loading       bool `json:"loading"`
}

type listUsersQuery struct {
	Page int    `query:"page" validate:"omitempty,gte=1"`
	Q    string `query:"q"    validate:"max=200"`
}

type listUsersResponse struct {
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	HasPrev    bool          `json:"has_prev"`
	HasNext    bool          `json:"has_next"`
	Term       string        `json:"term"`
	Users      []domain.User `json:"users"`
}

// Session reports the browser's authentication state.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/v1/session [get]
func (h *APIHandler) Session(c echo.Context) error {
	con, err := ctxConsole(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: con.Session.IsAuthenticated(),
		Loading:       con.Session.IsLoading(c.Request().Context()),
	})
}

// Users returns one page of users filtered by q.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        page  query     int     false  "Page number (1-based)"
// @Param        q     query     string  false  "Case-insensitive match on full name or email"
// @Success      200   {object}  listUsersResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/users [get]
func (h *APIHandler) Users(c echo.Context) error {
	con, err := ctxConsole(c)
	if err != nil {
		return err
	}

	var q listUsersQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if q.Page == 0 {
		q.Page = 1
	}

	ctrl := view.NewListController(con.Users)
	defer ctrl.Close()

	if err := ctrl.SetPage(c.Request().Context(), q.Page); err != nil {
		return err
	}
	ctrl.SetSearch(q.Q)

	state := ctrl.State()
	return c.JSON(http.StatusOK, listUsersResponse{
		Page:       state.Page,
		TotalPages: state.TotalPages,
		HasPrev:    state.HasPrev(),
		HasNext:    state.HasNext(),
		Term:       state.Term,
		Users:      state.Users,
	})
}
