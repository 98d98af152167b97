package ports

import (
	"context"

	"github.com/9rib/marketplace-api/internal/core/domain"
)

// ListApplicationsFilter carries the admin review queue query.
type ListApplicationsFilter struct {
	Status string // optional
	Page   int    // 1-based
	Limit  int
}

// ApplicationRepository defines persistence operations for artisan applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	// List returns a page of applications, newest first, and the total count.
	List(ctx context.Context, filter ListApplicationsFilter) ([]*domain.Application, int64, error)
	// UpdateDecision persists status, admin_notes, processed_by and processed_at.
	UpdateDecision(ctx context.Context, app *domain.Application) error
}

// ApplicationEventRepository stores the audit trail of processing decisions.
type ApplicationEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.ApplicationEvent) error
	// History returns the events of one application, oldest first.
	History(ctx context.Context, applicationID string) ([]*domain.ApplicationEvent, error)
}
