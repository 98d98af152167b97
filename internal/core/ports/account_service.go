package ports

import (
	"context"

	"github.com/9rib/marketplace-api/internal/core/domain"
)

// RegisterInput carries a new client account.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
}

// UpdateProfileInput carries the self-editable profile fields. Nil fields are unchanged.
type UpdateProfileInput struct {
	FullName *string
	Phone    *string
	Address  *string
}

// AuthService defines registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Profile, error)
	Login(ctx context.Context, email, password string) (string, *domain.Profile, error)
}

// ProfileService defines the caller's own account operations.
type ProfileService interface {
	Me(ctx context.Context, actor Actor) (*domain.Profile, error)
	UpdateMe(ctx context.Context, actor Actor, input UpdateProfileInput) (*domain.Profile, error)
}
