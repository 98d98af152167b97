package ports

import (
	"context"

	"github.com/9rib/marketplace-api/internal/core/domain"
)

// ProfileRepository defines persistence operations for user profiles.
type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) error
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	FindByEmail(ctx context.Context, email string) (*domain.Profile, error)
	// Update persists the self-editable contact fields.
	Update(ctx context.Context, p *domain.Profile) error
	UpdateRole(ctx context.Context, id string, role domain.Role) error
}
