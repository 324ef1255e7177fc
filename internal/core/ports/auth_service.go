package ports

import (
	"context"
	"time"

	"github.com/fieldtrack/visits-api/internal/core/domain"
)

// LoginResult is returned by a successful Authenticate call.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService interface {
	Register(ctx context.Context, username, password string, role domain.Role) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*LoginResult, error)
	ListUsers(ctx context.Context, principal domain.Principal) ([]*domain.User, error)
}

// TokenIssuer signs time-bound tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *domain.User) (token string, expiresAt time.Time, err error)
}

// TokenVerifier resolves a raw bearer token into a Principal. Every failure
// mode yields domain.ErrInvalidToken.
type TokenVerifier interface {
	Resolve(rawToken string) (domain.Principal, error)
}
