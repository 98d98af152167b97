package client

import (
	"net/url"
	"strconv"
)

// Artisan is a directory listing as served by the API.
type Artisan struct {
	ID              string   `json:"id"`
	UserID          string   `json:"user_id"`
	CategoryID      string   `json:"category_id"`
	CityID          string   `json:"city_id"`
	BusinessName    string   `json:"business_name"`
	Description     string   `json:"description"`
	Address         string   `json:"address,omitempty"`
	ExperienceYears int      `json:"experience_years"`
	Specialties     []string `json:"specialties"`
	RatingAverage   float64  `json:"rating_average"`
	RatingCount     int      `json:"rating_count"`
	IsVerified      bool     `json:"is_verified"`
	IsActive        bool     `json:"is_active"`
	IsFeatured      bool     `json:"is_featured"`
	OwnerName       string   `json:"owner_name"`
	CategoryName    string   `json:"category_name,omitempty"`
	CityName        string   `json:"city_name,omitempty"`
}

type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NameAr    string `json:"name_ar,omitempty"`
	Slug      string `json:"slug"`
	Icon      string `json:"icon,omitempty"`
	SortOrder int    `json:"sort_order"`
}

type City struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameAr string `json:"name_ar,omitempty"`
	Region string `json:"region,omitempty"`
}

// ArtisanFilter carries the directory query. Zero values are not sent.
type ArtisanFilter struct {
	Search     string
	CategoryID string
	CityID     string
	MinRating  float64
	Verified   *bool
	Page       int
	Limit      int
}

func (f ArtisanFilter) values() url.Values {
	v := url.Values{}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.CategoryID != "" {
		v.Set("category_id", f.CategoryID)
	}
	if f.CityID != "" {
		v.Set("city_id", f.CityID)
	}
	if f.MinRating > 0 {
		v.Set("min_rating", strconv.FormatFloat(f.MinRating, 'f', -1, 64))
	}
	if f.Verified != nil {
		v.Set("verified", strconv.FormatBool(*f.Verified))
	}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	return v
}

// ArtisanPage is one page of the directory.
type ArtisanPage struct {
	Items      []Artisan `json:"items"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}

// ProcessRequest is the process-application function body.
type ProcessRequest struct {
	ApplicationID string `json:"applicationId"`
	Action        string `json:"action"`
	AdminNotes    string `json:"adminNotes,omitempty"`
}

type ProcessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
