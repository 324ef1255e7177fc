package ports

import (
	"context"

	"github.com/fieldtrack/visits-api/internal/core/domain"
)

// UserRepository is the Credential Store.
type UserRepository interface {
	// FindByUsername matches the username exactly (case-sensitive) and returns
	// domain.ErrUserNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create inserts the user. Uniqueness of Username is enforced here, at
	// write time, returning domain.ErrDuplicateUsername on conflict.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
