package ports

import (
	"context"

	"github.com/99minutos/user-console/internal/core/domain"
)

// Notifier surfaces transient messages to the user.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// Navigator moves the user to another console route.
type Navigator interface {
	Navigate(nav domain.Navigation)
}
