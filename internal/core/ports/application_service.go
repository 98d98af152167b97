package ports

import (
	"context"
	"time"

	"github.com/9rib/marketplace-api/internal/core/domain"
)

// ProcessApplicationInput carries one admin decision.
type ProcessApplicationInput struct {
	ApplicationID string
	Action        string
	AdminNotes    string
}

// ProcessResult acknowledges a processed application. Callers refetch state.
type ProcessResult struct {
	Success bool
	Message string
}

// SubmitApplicationInput carries a candidate's request to be listed.
type SubmitApplicationInput struct {
	FullName        string
	Email           string
	Phone           string
	CategoryID      string
	CityID          string
	BusinessName    string
	Description     string
	ExperienceYears int
	Specialties     []string
}

// ListApplicationsInput carries the admin review queue parameters.
type ListApplicationsInput struct {
	Status string
	Page   int
	Limit  int
}

// ListApplicationsResult is returned by List.
type ListApplicationsResult struct {
	Items      []*domain.Application
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// SubmitResult is returned after an application is stored.
type SubmitResult struct {
	ID        string
	Status    string
	CreatedAt time.Time
}

// ApplicationService defines the artisan application workflow.
type ApplicationService interface {
	Submit(ctx context.Context, actor Actor, input SubmitApplicationInput) (*SubmitResult, error)
	Process(ctx context.Context, actor Actor, input ProcessApplicationInput) (*ProcessResult, error)
	List(ctx context.Context, actor Actor, input ListApplicationsInput) (*ListApplicationsResult, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Application, error)
	History(ctx context.Context, actor Actor, id string) ([]*domain.ApplicationEvent, error)
}
