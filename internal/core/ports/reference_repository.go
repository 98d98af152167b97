package ports

import (
	"context"

	"github.com/9rib/marketplace-api/internal/core/domain"
)

// ReferenceRepository reads the static lookup tables.
type ReferenceRepository interface {
	ActiveCategories(ctx context.Context) ([]domain.Category, error)
	ActiveCities(ctx context.Context) ([]domain.City, error)
}
