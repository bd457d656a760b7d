package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-console/internal/core/domain"
	"github.com/99minutos/user-console/internal/core/service"
	"github.com/99minutos/user-console/internal/core/view"
)

// UsersHandler serves the protected user list and the delete flow.
type UsersHandler struct{}

func NewUsersHandler() *UsersHandler {
	return &UsersHandler{}
}

type usersView struct {
	view.ListState
	LoadFailed bool
}

// PageURL links to page p keeping the current search term.
func (v usersView) PageURL(p int) string {
	return listURL(p, v.Term, 0)
}

// ConfirmURL opens the delete dialog for id.
func (v usersView) ConfirmURL(id int) string {
	return listURL(v.Page, v.Term, id)
}

// CancelURL closes the delete dialog.
func (v usersView) CancelURL() string {
	return listURL(v.Page, v.Term, 0)
}

func listURL(page int, term string, confirm int) string {
	q := url.Values{}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if term != "" {
		q.Set("q", term)
	}
	if confirm > 0 {
		q.Set("confirm", strconv.Itoa(confirm))
	}
	if len(q) == 0 {
		return "/users"
	}
	return "/users?" + q.Encode()
}

// List handles GET /users?page=&q=&confirm=.
func (h *UsersHandler) List(c echo.Context) error {
	con, err := ctxConsole(c)
	if err != nil {
		return err
	}

	ctrl := view.NewListController(con.Users)
	defer ctrl.Close()

	page := parsePage(c.QueryParam("page"))
	term := c.QueryParam("q")
	if err := ctrl.SetPage(c.Request().Context(), page); err != nil {
		ctrl.SetSearch(term)
		return h.render(c, http.StatusBadGateway, ctrl, true)
	}
	ctrl.SetSearch(term)

	if raw := c.QueryParam("confirm"); raw != "" {
		id, err := service.ParseUserID(raw)
		if err == nil {
			err = ctrl.OpenDelete(id)
		}
		if err != nil {
			return c.Redirect(http.StatusSeeOther, listURL(page, term, 0))
		}
	}

	return h.render(c, http.StatusOK, ctrl, false)
}

// Delete handles POST /users/:id/delete. The list is rendered straight from
// the page loaded before the delete, with the row removed, so the remote
// collection is not fetched again.
func (h *UsersHandler) Delete(c echo.Context) error {
	con, err := ctxConsole(c)
	if err != nil {
		return err
	}

	id, err := service.ParseUserID(c.Param("id"))
	if err != nil {
		return err
	}

	ctrl := view.NewListController(con.Users)
	defer ctrl.Close()

	ctx := c.Request().Context()
	page := parsePage(c.FormValue("page"))
	term := c.FormValue("q")
	if err := ctrl.SetPage(ctx, page); err != nil {
		ctrl.SetSearch(term)
		return h.render(c, http.StatusBadGateway, ctrl, true)
	}
	ctrl.SetSearch(term)

	if err := ctrl.OpenDelete(id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Redirect(http.StatusSeeOther, listURL(page, term, 0))
		}
		return err
	}

	if err := ctrl.ConfirmDelete(ctx); err != nil {
		return h.render(c, http.StatusBadGateway, ctrl, false)
	}
	return h.render(c, http.StatusOK, ctrl, false)
}

func (h *UsersHandler) render(c echo.Context, code int, ctrl *view.ListController, loadFailed bool) error {
	return render(c, code, PageUsers, "Users", usersView{ListState: ctrl.State(), LoadFailed: loadFailed})
}

// parsePage reads a 1-based page number, falling back to the first page.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
