package view

import (
	"context"
	"sync"

	"github.com/99minutos/user-console/internal/core/domain"
	"github.com/99minutos/user-console/internal/core/ports"
)

// ListState is a read-only snapshot of the user list view.
type ListState struct {
	Users      []domain.User
	Page       int
	TotalPages int
	Term       string
	Loading    bool
	Dialog     domain.DeleteDialog
}

// HasPrev reports whether a previous page exists.
func (s ListState) HasPrev() bool { return s.Page > 1 }

// HasNext reports whether a next page exists.
func (s ListState) HasNext() bool { return s.Page < s.TotalPages }

// Empty is true once loading finished and nothing is left to show. It is
// never true while loading.
func (s ListState) Empty() bool { return !s.Loading && len(s.Users) == 0 }

// ListController drives the paged user list: fetch by page, local search
// filtering and the delete confirmation flow.
//
// Every fetch is tagged with a generation. A response is applied only if no
// newer fetch was started meanwhile and the controller was not closed, so
// racing page changes resolve to the last requested page.
type ListController struct {
	users ports.UserService

	mu         sync.Mutex
	all        []domain.User
	filtered   []domain.User
	loading    bool
	page       int
	totalPages int
	term       string
	dialog     domain.DeleteDialog
	generation uint64
	closed     bool
}

// NewListController starts on page 1 in the loading state.
func NewListController(users ports.UserService) *ListController {
	return &ListController{
		users:      users,
		loading:    true,
		page:       1,
		totalPages: 1,
	}
}

// SetPage moves to page and fetches it.
func (c *ListController) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	c.page = page
	c.mu.Unlock()
	return c.Load(ctx)
}

// Load fetches the current page and replaces both the full and the filtered
// set. The loading flag is cleared whatever the outcome. Stale responses are
// dropped without error.
func (c *ListController) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.generation++
	gen := c.generation
	page := c.page
	c.loading = true
	c.mu.Unlock()

	result, err := c.users.ListUsers(ctx, page)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.generation {
		return nil
	}
	c.loading = false
	if err != nil {
		return err
	}

	c.all = append([]domain.User(nil), result.Data...)
	c.totalPages = result.TotalPages
	c.refilter()
	return nil
}

// SetSearch changes the search term and recomputes the displayed rows from
// the already fetched page. It never fetches.
func (c *ListController) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.term = term
	c.refilter()
}

// OpenDelete opens the confirmation dialog for a row of the loaded page.
func (c *ListController) OpenDelete(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, u := range c.all {
		if u.ID == id {
			c.dialog = domain.DeleteDialog{Open: true, UserID: u.ID, UserName: u.FullName()}
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// CancelDelete closes the dialog without deleting.
func (c *ListController) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialog.Open = false
}

// ConfirmDelete deletes the dialog's target. On success the row leaves both
// sets without a refetch. The dialog closes either way; on failure the rows
// are left untouched and the error is returned.
func (c *ListController) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	target := c.dialog
	c.mu.Unlock()
	if !target.Open || target.UserID == 0 {
		return nil
	}

	err := c.users.DeleteUser(ctx, target.UserID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialog = domain.DeleteDialog{}
	if err != nil {
		return err
	}
	if c.closed {
		return nil
	}
	c.all = domain.WithoutUser(c.all, target.UserID)
	c.filtered = domain.WithoutUser(c.filtered, target.UserID)
	return nil
}

// Close detaches the controller; late responses are ignored afterwards.
func (c *ListController) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// State returns a snapshot safe to render.
func (c *ListController) State() ListState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ListState{
		Users:      append([]domain.User(nil), c.filtered...),
		Page:       c.page,
		TotalPages: c.totalPages,
		Term:       c.term,
		Loading:    c.loading,
		Dialog:     c.dialog,
	}
}

// refilter must be called with mu held.
func (c *ListController) refilter() {
	c.filtered = domain.FilterUsers(c.all, c.term)
}
