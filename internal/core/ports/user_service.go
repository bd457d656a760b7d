package ports

import (
	"context"

	"github.com/99minutos/user-console/internal/core/domain"
)

// UserService is the user API as seen by the view controllers: every failure
// has already been logged and notified when it is returned.
type UserService interface {
	ListUsers(ctx context.Context, page int) (*domain.UserPage, error)
	GetUser(ctx context.Context, id int) (*domain.User, error)
	UpdateUser(ctx context.Context, id int, update domain.UserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// SessionService owns the token of one browser.
type SessionService interface {
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context)
	IsAuthenticated() bool
	IsLoading(ctx context.Context) bool
	Token() string
}
