package handler

import (
	"time"

	"github.com/9rib/marketplace-api/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8"`
	FullName string `json:"full_name" validate:"max=120"`
	Phone    string `json:"phone"     validate:"max=32"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string          `json:"token,omitempty"`
	User  *domain.Profile `json:"user,omitempty"`
}

type updateProfileRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,max=120"`
	Phone    *string `json:"phone"     validate:"omitempty,max=32"`
	Address  *string `json:"address"   validate:"omitempty,max=255"`
}

// --- Applications ---

// processApplicationRequest is the process-application function body.
type processApplicationRequest struct {
	ApplicationID string `json:"applicationId"`
	Action        string `json:"action"`
	AdminNotes    string `json:"adminNotes"`
}

type processDecisionRequest struct {
	Action     string `json:"action"`
	AdminNotes string `json:"admin_notes"`
}

type processApplicationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type submitApplicationRequest struct {
	FullName        string   `json:"full_name"        validate:"required,max=120"`
	Email           string   `json:"email"            validate:"required,email"`
	Phone           string   `json:"phone"            validate:"required,max=32"`
	CategoryID      string   `json:"category_id"      validate:"required"`
	CityID          string   `json:"city_id"          validate:"required"`
	BusinessName    string   `json:"business_name"    validate:"max=160"`
	Description     string   `json:"description"      validate:"max=4000"`
	ExperienceYears int      `json:"experience_years" validate:"gte=0,lte=80"`
	Specialties     []string `json:"specialties"`
}

type submitApplicationResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type pageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listApplicationsResponse struct {
	Items []*domain.Application `json:"items"`
	pageMeta
}

type applicationEventResponse struct {
	Action     string    `json:"action"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	AdminID    string    `json:"admin_id"`
	AdminNotes string    `json:"admin_notes,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// --- Artisans ---

type listArtisansResponse struct {
	Items []*domain.ArtisanListing `json:"items"`
	pageMeta
}

type updateArtisanRequest struct {
	BusinessName      *string  `json:"business_name"       validate:"omitempty,max=160"`
	Description       *string  `json:"description"         validate:"omitempty,max=4000"`
	Address           *string  `json:"address"             validate:"omitempty,max=255"`
	PortfolioImages   []string `json:"portfolio_images"    validate:"omitempty,max=20"`
	ServiceRadiusKm   *int     `json:"service_radius_km"   validate:"omitempty,gte=0,lte=500"`
	ResponseTimeHours *int     `json:"response_time_hours" validate:"omitempty,gte=0,lte=720"`
}

type setArtisanStatusRequest struct {
	IsActive   *bool `json:"is_active"`
	IsFeatured *bool `json:"is_featured"`
}

// trackViewRequest is the track-view function body.
type trackViewRequest struct {
	ArtisanID string `json:"artisanId" validate:"required"`
}

type trackViewResponse struct {
	Success bool `json:"success"`
	Counted bool `json:"counted"`
}

// --- Notifications and contact ---

// createNotificationRequest is the create-notification function body.
type createNotificationRequest struct {
	UserID  string         `json:"userId"  validate:"required"`
	Type    string         `json:"type"    validate:"required,max=64"`
	Title   string         `json:"title"   validate:"required,max=200"`
	Message string         `json:"message" validate:"required,max=2000"`
	Data    map[string]any `json:"data"`
}

// contactMessageRequest is the contact-message function body.
type contactMessageRequest struct {
	Name    string `json:"name"    validate:"required,max=120"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"max=32"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type createdResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}
