package ports

import (
	"context"

	"github.com/9rib/marketplace-api/internal/core/domain"
)

// ReferenceService serves the category and city lookup tables.
type ReferenceService interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Cities(ctx context.Context) ([]domain.City, error)
}
