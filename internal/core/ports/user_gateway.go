package ports

import (
	"context"

	"github.com/99minutos/user-console/internal/core/domain"
)

// UserGateway is the transport to the remote user service. Implementations
// return *domain.RemoteError for every failure and have no other side effect.
type UserGateway interface {
	ListUsers(ctx context.Context, page int) (*domain.UserPage, error)
	GetUser(ctx context.Context, id int) (*domain.User, error)
	UpdateUser(ctx context.Context, id int, update domain.UserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// AuthGateway exchanges credentials for a token at the remote service.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (string, error)
}
