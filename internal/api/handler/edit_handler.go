package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-console/internal/core/domain"
	"github.com/99minutos/user-console/internal/core/service"
	"github.com/99minutos/user-console/internal/core/view"
)

// EditHandler serves the protected edit page.
type EditHandler struct {
	validator *view.FormValidator
}

func NewEditHandler(fv *view.FormValidator) *EditHandler {
	if fv == nil {
		fv = view.NewFormValidator()
	}
	return &EditHandler{validator: fv}
}

// Show handles GET /users/:id/edit. A user the remote service does not know
// gets the not-found page; any other load failure keeps the edit page with
// only the back link.
func (h *EditHandler) Show(c echo.Context) error {
	con, err := ctxConsole(c)
	if err != nil {
		return err
	}
	id, err := service.ParseUserID(c.Param("id"))
	if err != nil {
		return err
	}

	ctrl := view.NewEditController(id, con.Users, con.Nav, h.validator)
	defer ctrl.Close()

	if err := ctrl.Load(c.Request().Context()); err != nil {
		if domain.StatusOf(err) == http.StatusNotFound {
			return domain.ErrUserNotFound
		}
		return h.render(c, http.StatusBadGateway, ctrl)
	}
	return h.render(c, http.StatusOK, ctrl)
}

// Update handles POST /users/:id/edit.
//
//	303 → /users on success
//	422 → invalid draft, nothing was sent
//	502 → the remote update failed; the draft is kept
func (h *EditHandler) Update(c echo.Context) error {
	con, err := ctxConsole(c)
	if err != nil {
		return err
	}
	id, err := service.ParseUserID(c.Param("id"))
	if err != nil {
		return err
	}

	ctrl := view.NewEditController(id, con.Users, con.Nav, h.validator)
	defer ctrl.Close()

	ctrl.Seed(domain.Draft{Avatar: c.FormValue("avatar")})
	for _, field := range []string{domain.FieldFirstName, domain.FieldLastName, domain.FieldEmail} {
		ctrl.SetField(field, c.FormValue(field))
	}

	err = ctrl.Submit(c.Request().Context())
	switch {
	case err == nil:
		if redirected, err := followNavigation(c, con); redirected || err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/users")
	case errors.Is(err, domain.ErrValidation):
		return h.render(c, http.StatusUnprocessableEntity, ctrl)
	default:
		return h.render(c, http.StatusBadGateway, ctrl)
	}
}

func (h *EditHandler) render(c echo.Context, code int, ctrl *view.EditController) error {
	return render(c, code, PageEdit, "Edit User", ctrl.State())
}
