package ports

import (
	"context"

	"github.com/9rib/marketplace-api/internal/core/domain"
)

// ListArtisansInput carries the public directory filters.
type ListArtisansInput struct {
	Search     string
	CategoryID string
	CityID     string
	MinRating  float64
	Verified   *bool
	Page       int
	Limit      int
}

// ListArtisansResult is returned by List.
type ListArtisansResult struct {
	Items      []*domain.ArtisanListing
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UpdateArtisanInput carries the artisan's self-edit. Nil fields are unchanged.
type UpdateArtisanInput struct {
	BusinessName      *string
	Description       *string
	Address           *string
	PortfolioImages   []string
	ServiceRadiusKm   *int
	ResponseTimeHours *int
}

// SetArtisanStatusInput carries the admin moderation toggles. Nil fields are unchanged.
type SetArtisanStatusInput struct {
	IsActive   *bool
	IsFeatured *bool
}

// ViewResult reports whether a tracked view was counted.
type ViewResult struct {
	Counted bool
}

// ArtisanService defines the artisan directory use cases.
type ArtisanService interface {
	List(ctx context.Context, input ListArtisansInput) (*ListArtisansResult, error)
	Top(ctx context.Context, limit int) ([]*domain.ArtisanListing, error)
	Get(ctx context.Context, id string) (*domain.ArtisanListing, error)
	UpdateOwn(ctx context.Context, actor Actor, input UpdateArtisanInput) (*domain.ArtisanProfile, error)
	SetStatus(ctx context.Context, actor Actor, id string, input SetArtisanStatusInput) (*domain.ArtisanListing, error)
	RecordView(ctx context.Context, artisanID, viewerKey string) (*ViewResult, error)
}
