package ports

import (
	"context"

	"github.com/9rib/marketplace-api/internal/core/domain"
)

// ArtisanQuery carries the directory filters.
type ArtisanQuery struct {
	Search     string  // case-insensitive substring over name, description, address, owner
	CategoryID string  // optional
	CityID     string  // optional
	MinRating  float64 // optional, 0 = no filter
	Verified   *bool   // optional
	ActiveOnly bool
	Page       int // 1-based
	Limit      int
}

// ArtisanRepository defines persistence operations for artisan profiles.
type ArtisanRepository interface {
	// UpsertByUser inserts the profile or, when one exists for the same
	// user_id, overwrites its application-derived fields.
	UpsertByUser(ctx context.Context, p *domain.ArtisanProfile) error
	FindByID(ctx context.Context, id string) (*domain.ArtisanListing, error)
	FindByUserID(ctx context.Context, userID string) (*domain.ArtisanProfile, error)
	List(ctx context.Context, q ArtisanQuery) ([]*domain.ArtisanListing, int64, error)
	// Top returns active artisans by rating average, then rating count.
	Top(ctx context.Context, limit int) ([]*domain.ArtisanListing, error)
	// Update persists the self-editable and admin-moderated fields.
	Update(ctx context.Context, p *domain.ArtisanProfile) error
	IncrementViews(ctx context.Context, id string) error
}
