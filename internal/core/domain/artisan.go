package domain

import "time"

// ArtisanProfile is the public listing of an approved artisan.
// UserID is unique: a user owns at most one listing.
type ArtisanProfile struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	CategoryID        string     `json:"category_id"`
	CityID            string     `json:"city_id"`
	BusinessName      string     `json:"business_name"`
	Description       string     `json:"description"`
	Address           string     `json:"address,omitempty"`
	ExperienceYears   int        `json:"experience_years"`
	Specialties       []string   `json:"specialties"`
	RatingAverage     float64    `json:"rating_average"`
	RatingCount       int        `json:"rating_count"`
	IsVerified        bool       `json:"is_verified"`
	VerificationDate  *time.Time `json:"verification_date,omitempty"`
	IsActive          bool       `json:"is_active"`
	IsFeatured        bool       `json:"is_featured"`
	PortfolioImages   []string   `json:"portfolio_images"`
	ServiceRadiusKm   int        `json:"service_radius_km"`
	ResponseTimeHours int        `json:"response_time_hours"`
	ViewCount         int64      `json:"view_count"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Listing defaults applied to profiles created by validation.
const (
	DefaultServiceRadiusKm   = 20
	DefaultResponseTimeHours = 24
)

// ArtisanProfileFromApplication builds the verified, active listing that an
// approved application materialises into.
func ArtisanProfileFromApplication(app *Application, now time.Time) *ArtisanProfile {
	verifiedAt := now
	specialties := make([]string, len(app.Specialties))
	copy(specialties, app.Specialties)

	p := &ArtisanProfile{
		CategoryID:        app.CategoryID,
		CityID:            app.CityID,
		BusinessName:      app.BusinessName,
		Description:       app.Description,
		ExperienceYears:   app.ExperienceYears,
		Specialties:       specialties,
		IsVerified:        true,
		VerificationDate:  &verifiedAt,
		IsActive:          true,
		PortfolioImages:   []string{},
		ServiceRadiusKm:   DefaultServiceRadiusKm,
		ResponseTimeHours: DefaultResponseTimeHours,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if app.UserID != nil {
		p.UserID = *app.UserID
	}
	return p
}

// ArtisanListing is an artisan profile joined with its display references.
type ArtisanListing struct {
	ArtisanProfile
	OwnerName    string `json:"owner_name"`
	CategoryName string `json:"category_name,omitempty"`
	CityName     string `json:"city_name,omitempty"`
}
