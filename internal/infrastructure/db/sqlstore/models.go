package sqlstore

import (
	"time"

	"gorm.io/datatypes"

	"github.com/9rib/marketplace-api/internal/core/domain"
)

type profileModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	FullName     string `gorm:"size:255"`
	Phone        string `gorm:"size:32"`
	Address      string `gorm:"size:512"`
	Role         string `gorm:"size:16;not null;default:client"`
	IsVerified   bool   `gorm:"not null;default:false"`
	PasswordHash string `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (profileModel) TableName() string { return "profiles" }

func (m *profileModel) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:           m.ID,
		Email:        m.Email,
		FullName:     m.FullName,
		Phone:        m.Phone,
		Address:      m.Address,
		Role:         domain.Role(m.Role),
		IsVerified:   m.IsVerified,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func profileFromDomain(p *domain.Profile) *profileModel {
	return &profileModel{
		ID:           p.ID,
		Email:        p.Email,
		FullName:     p.FullName,
		Phone:        p.Phone,
		Address:      p.Address,
		Role:         string(p.Role),
		IsVerified:   p.IsVerified,
		PasswordHash: p.PasswordHash,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type categoryModel struct {
	ID        string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"size:128;not null"`
	NameAr    string `gorm:"size:128"`
	Slug      string `gorm:"uniqueIndex;size:128;not null"`
	Icon      string `gorm:"size:64"`
	IsActive  bool   `gorm:"not null"`
	SortOrder int    `gorm:"not null;default:0"`
}

func (categoryModel) TableName() string { return "categories" }

type cityModel struct {
	ID       string `gorm:"primaryKey;size:64"`
	Name     string `gorm:"size:128;not null"`
	NameAr   string `gorm:"size:128"`
	Region   string `gorm:"size:128"`
	IsActive bool   `gorm:"not null"`
}

func (cityModel) TableName() string { return "cities" }

type applicationModel struct {
	ID              string  `gorm:"primaryKey;size:36"`
	UserID          *string `gorm:"size:36;index"`
	FullName        string  `gorm:"size:255;not null"`
	Email           string  `gorm:"size:255;not null"`
	Phone           string  `gorm:"size:32"`
	CategoryID      string  `gorm:"size:64"`
	CityID          string  `gorm:"size:64"`
	BusinessName    string  `gorm:"size:255"`
	Description     string  `gorm:"type:text"`
	ExperienceYears int     `gorm:"not null;default:0"`
	Specialties     datatypes.JSONSlice[string]
	Status          string  `gorm:"size:32;not null;index"`
	AdminNotes      string  `gorm:"type:text"`
	ProcessedBy     *string `gorm:"size:36"`
	ProcessedAt     *time.Time
	CreatedAt       time.Time `gorm:"index"`
}

func (applicationModel) TableName() string { return "applications" }

func (m *applicationModel) toDomain() *domain.Application {
	return &domain.Application{
		ID:              m.ID,
		UserID:          m.UserID,
		FullName:        m.FullName,
		Email:           m.Email,
		Phone:           m.Phone,
		CategoryID:      m.CategoryID,
		CityID:          m.CityID,
		BusinessName:    m.BusinessName,
		Description:     m.Description,
		ExperienceYears: m.ExperienceYears,
		Specialties:     nonNil(m.Specialties),
		Status:          domain.ApplicationStatus(m.Status),
		AdminNotes:      m.AdminNotes,
		ProcessedBy:     m.ProcessedBy,
		ProcessedAt:     m.ProcessedAt,
		CreatedAt:       m.CreatedAt,
	}
}

func applicationFromDomain(a *domain.Application) *applicationModel {
	return &applicationModel{
		ID:              a.ID,
		UserID:          a.UserID,
		FullName:        a.FullName,
		Email:           a.Email,
		Phone:           a.Phone,
		CategoryID:      a.CategoryID,
		CityID:          a.CityID,
		BusinessName:    a.BusinessName,
		Description:     a.Description,
		ExperienceYears: a.ExperienceYears,
		Specialties:     datatypes.JSONSlice[string](nonNil(a.Specialties)),
		Status:          string(a.Status),
		AdminNotes:      a.AdminNotes,
		ProcessedBy:     a.ProcessedBy,
		ProcessedAt:     a.ProcessedAt,
		CreatedAt:       a.CreatedAt,
	}
}

type artisanModel struct {
	ID                string `gorm:"primaryKey;size:36"`
	UserID            string `gorm:"size:36;uniqueIndex;not null"`
	CategoryID        string `gorm:"size:64;index"`
	CityID            string `gorm:"size:64;index"`
	BusinessName      string `gorm:"size:255;not null"`
	Description       string `gorm:"type:text"`
	Address           string `gorm:"size:512"`
	ExperienceYears   int    `gorm:"not null;default:0"`
	Specialties       datatypes.JSONSlice[string]
	RatingAverage     float64 `gorm:"not null;default:0"`
	RatingCount       int     `gorm:"not null;default:0"`
	IsVerified        bool    `gorm:"not null;default:false"`
	VerificationDate  *time.Time
	IsActive          bool `gorm:"not null;index"`
	IsFeatured        bool `gorm:"not null;default:false"`
	PortfolioImages   datatypes.JSONSlice[string]
	ServiceRadiusKm   int   `gorm:"not null"`
	ResponseTimeHours int   `gorm:"not null"`
	ViewCount         int64 `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (artisanModel) TableName() string { return "artisan_profiles" }

func (m *artisanModel) toDomain() *domain.ArtisanProfile {
	return &domain.ArtisanProfile{
		ID:                m.ID,
		UserID:            m.UserID,
		CategoryID:        m.CategoryID,
		CityID:            m.CityID,
		BusinessName:      m.BusinessName,
		Description:       m.Description,
		Address:           m.Address,
		ExperienceYears:   m.ExperienceYears,
		Specialties:       nonNil(m.Specialties),
		RatingAverage:     m.RatingAverage,
		RatingCount:       m.RatingCount,
		IsVerified:        m.IsVerified,
		VerificationDate:  m.VerificationDate,
		IsActive:          m.IsActive,
		IsFeatured:        m.IsFeatured,
		PortfolioImages:   nonNil(m.PortfolioImages),
		ServiceRadiusKm:   m.ServiceRadiusKm,
		ResponseTimeHours: m.ResponseTimeHours,
		ViewCount:         m.ViewCount,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func artisanFromDomain(p *domain.ArtisanProfile) *artisanModel {
	return &artisanModel{
		ID:                p.ID,
		UserID:            p.UserID,
		CategoryID:        p.CategoryID,
		CityID:            p.CityID,
		BusinessName:      p.BusinessName,
		Description:       p.Description,
		Address:           p.Address,
		ExperienceYears:   p.ExperienceYears,
		Specialties:       datatypes.JSONSlice[string](nonNil(p.Specialties)),
		RatingAverage:     p.RatingAverage,
		RatingCount:       p.RatingCount,
		IsVerified:        p.IsVerified,
		VerificationDate:  p.VerificationDate,
		IsActive:          p.IsActive,
		IsFeatured:        p.IsFeatured,
		PortfolioImages:   datatypes.JSONSlice[string](nonNil(p.PortfolioImages)),
		ServiceRadiusKm:   p.ServiceRadiusKm,
		ResponseTimeHours: p.ResponseTimeHours,
		ViewCount:         p.ViewCount,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// artisanListingRow is the scan target of the listing join. The profile
// columns need an exported field, gorm skips unexported embedded structs.
type artisanListingRow struct {
	Artisan      artisanModel `gorm:"embedded"`
	OwnerName    string
	CategoryName string
	CityName     string
}

func (r *artisanListingRow) toDomain() *domain.ArtisanListing {
	return &domain.ArtisanListing{
		ArtisanProfile: *r.Artisan.toDomain(),
		OwnerName:      r.OwnerName,
		CategoryName:   r.CategoryName,
		CityName:       r.CityName,
	}
}

type notificationModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"size:36;not null;index"`
	Type      string `gorm:"size:64;not null"`
	Title     string `gorm:"size:255;not null"`
	Message   string `gorm:"type:text"`
	Data      datatypes.JSONMap
	IsRead    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"index"`
}

func (notificationModel) TableName() string { return "notifications" }

func (m *notificationModel) toDomain() *domain.Notification {
	return &domain.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      m.Type,
		Title:     m.Title,
		Message:   m.Message,
		Data:      map[string]any(m.Data),
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}

type contactModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:255;not null"`
	Email     string `gorm:"size:255;not null"`
	Phone     string `gorm:"size:32"`
	Subject   string `gorm:"size:255"`
	Message   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (contactModel) TableName() string { return "contact_messages" }

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
