package view

import (
	"context"
	"sync"

	"github.com/99minutos/user-console/internal/core/domain"
	"github.com/99minutos/user-console/internal/core/ports"
)

const usersPath = "/users"

var draftFields = []string{domain.FieldFirstName, domain.FieldLastName, domain.FieldEmail}

// EditState is a snapshot of the edit view.
type EditState struct {
	UserID     int
	Loading    bool
	LoadFailed bool
	Saving     bool
	Draft      domain.Draft
	Errors     domain.FieldErrors
}

// EditController loads one user into a draft, validates it and submits the
// update.
type EditController struct {
	id        int
	users     ports.UserService
	nav       ports.Navigator
	validator *FormValidator

	mu         sync.Mutex
	loading    bool
	loadFailed bool
	saving     bool
	draft      domain.Draft
	errs       domain.FieldErrors
	closed     bool
}

func NewEditController(id int, users ports.UserService, nav ports.Navigator, fv *FormValidator) *EditController {
	if fv == nil {
		fv = NewFormValidator()
	}
	return &EditController{
		id:        id,
		users:     users,
		nav:       nav,
		validator: fv,
		loading:   true,
		errs:      emptyErrors(draftFields),
	}
}

// Load fetches the user and fills the draft. Loading is cleared on every
// path.
func (c *EditController) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	user, err := c.users.GetUser(ctx, c.id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if c.closed {
		return nil
	}
	if err != nil {
		c.loadFailed = true
		return err
	}
	c.loadFailed = false
	c.draft = domain.DraftFromUser(*user)
	return nil
}

// Seed replaces the draft with values already held by the caller, such as a
// posted form, and ends the loading state without a fetch.
func (c *EditController) Seed(draft domain.Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = draft
	c.loading = false
	c.loadFailed = false
}

// SetField updates one draft field. An existing error on that field is
// cleared right away; errors are only recomputed on submit.
func (c *EditController) SetField(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch name {
	case domain.FieldFirstName:
		c.draft.FirstName = value
	case domain.FieldLastName:
		c.draft.LastName = value
	case domain.FieldEmail:
		c.draft.Email = value
	default:
		return
	}
	if c.errs.Has(name) {
		c.errs[name] = ""
	}
}

// Validate recomputes every field error and reports whether the draft is
// valid.
func (c *EditController) Validate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked()
}

func (c *EditController) validateLocked() bool {
	c.errs = c.validator.Check(c.draft, draftFields...)
	return c.errs.Empty()
}

// Submit validates the draft and, if valid, sends it without the avatar.
// Invalid drafts never reach the network. On success the user is taken back
// to the list; on failure they stay on the page.
func (c *EditController) Submit(ctx context.Context) error {
	c.mu.Lock()
	if !c.validateLocked() {
		c.mu.Unlock()
		return domain.ErrValidation
	}
	c.saving = true
	update := c.draft.Update()
	c.mu.Unlock()

	_, err := c.users.UpdateUser(ctx, c.id, update)

	c.mu.Lock()
	c.saving = false
	closed := c.closed
	c.mu.Unlock()
	if err != nil {
		return err
	}
	if !closed {
		c.nav.Navigate(domain.Navigation{Path: usersPath})
	}
	return nil
}

// Close detaches the controller from late responses.
func (c *EditController) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *EditController) State() EditState {
	c.mu.Lock()
	defer c.mu.Unlock()
	errs := make(domain.FieldErrors, len(c.errs))
	for k, v := range c.errs {
		errs[k] = v
	}
	return EditState{
		UserID:     c.id,
		Loading:    c.loading,
		LoadFailed: c.loadFailed,
		Saving:     c.saving,
		Draft:      c.draft,
		Errors:     errs,
	}
}

func emptyErrors(fields []string) domain.FieldErrors {
	errs := make(domain.FieldErrors, len(fields))
	for _, f := range fields {
		errs[f] = ""
	}
	return errs
}
