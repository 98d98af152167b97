package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/9rib/marketplace-api/internal/core/domain"
	"github.com/9rib/marketplace-api/internal/core/ports"
)

const (
	defaultTopLimit = 6
	maxTopLimit     = 24
	maxRating       = 5.0
)

// ViewDeduplicator abstracts the view-tracking idempotency store (Redis).
type ViewDeduplicator interface {
	// MarkFirstView records the view and reports whether it is the first one
	// from viewerKey for this artisan within the current window.
	MarkFirstView(ctx context.Context, artisanID, viewerKey string) (bool, error)
}

// ArtisanService implements the public artisan directory.
type ArtisanService struct {
	artisans ports.ArtisanRepository
	profiles ports.ProfileRepository
	dedup    ViewDeduplicator
	log      zerolog.Logger
	now      func() time.Time
}

func NewArtisanService(
	artisans ports.ArtisanRepository,
	profiles ports.ProfileRepository,
	dedup ViewDeduplicator,
	log zerolog.Logger,
) *ArtisanService {
	return &ArtisanService{
		artisans: artisans,
		profiles: profiles,
		dedup:    dedup,
		log:      log,
		now:      time.Now,
	}
}

// List returns active artisans matching the filters.
func (s *ArtisanService) List(ctx context.Context, in ports.ListArtisansInput) (*ports.ListArtisansResult, error) {
	if in.MinRating < 0 || in.MinRating > maxRating {
		return nil, fmt.Errorf("%w: min_rating must be between 0 and 5", domain.ErrInvalidInput)
	}

	page, limit := normalizePage(in.Page, in.Limit)
	items, total, err := s.artisans.List(ctx, ports.ArtisanQuery{
		Search:     strings.TrimSpace(in.Search),
		CategoryID: in.CategoryID,
		CityID:     in.CityID,
		MinRating:  in.MinRating,
		Verified:   in.Verified,
		ActiveOnly: true,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list artisans: %w", err)
	}

	return &ports.ListArtisansResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// Top returns the best rated active artisans.
func (s *ArtisanService) Top(ctx context.Context, limit int) ([]*domain.ArtisanListing, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	if limit > maxTopLimit {
		limit = maxTopLimit
	}
	items, err := s.artisans.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("top artisans: %w", err)
	}
	return items, nil
}

// Get returns one active artisan. Deactivated listings are reported as not found.
func (s *ArtisanService) Get(ctx context.Context, id string) (*domain.ArtisanListing, error) {
	listing, err := s.artisans.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get artisan: %w", err)
	}
	if !listing.IsActive {
		return nil, domain.ErrArtisanNotFound
	}
	return listing, nil
}

// UpdateOwn applies the artisan's self-edit to the listing owned by the caller.
func (s *ArtisanService) UpdateOwn(ctx context.Context, actor ports.Actor, in ports.UpdateArtisanInput) (*domain.ArtisanProfile, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	p, err := s.artisans.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("update artisan: %w", err)
	}

	if in.BusinessName != nil {
		name := strings.TrimSpace(*in.BusinessName)
		if name == "" {
			return nil, fmt.Errorf("%w: business_name cannot be empty", domain.ErrInvalidInput)
		}
		p.BusinessName = name
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Address != nil {
		p.Address = strings.TrimSpace(*in.Address)
	}
	if in.PortfolioImages != nil {
		p.PortfolioImages = in.PortfolioImages
	}
	if in.ServiceRadiusKm != nil {
		if *in.ServiceRadiusKm < 0 {
			return nil, fmt.Errorf("%w: service_radius_km cannot be negative", domain.ErrInvalidInput)
		}
		p.ServiceRadiusKm = *in.ServiceRadiusKm
	}
	if in.ResponseTimeHours != nil {
		if *in.ResponseTimeHours <= 0 {
			return nil, fmt.Errorf("%w: response_time_hours must be positive", domain.ErrInvalidInput)
		}
		p.ResponseTimeHours = *in.ResponseTimeHours
	}
	p.UpdatedAt = s.now().UTC()

	if err := s.artisans.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update artisan: %w", err)
	}
	s.log.Info().Str("artisan_id", p.ID).Str("user_id", actor.UserID).Msg("artisan profile updated")
	return p, nil
}

// SetStatus applies admin moderation toggles.
func (s *ArtisanService) SetStatus(ctx context.Context, actor ports.Actor, id string, in ports.SetArtisanStatusInput) (*domain.ArtisanListing, error) {
	if err := requireAdmin(ctx, s.profiles, actor); err != nil {
		return nil, err
	}
	listing, err := s.artisans.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("set artisan status: %w", err)
	}

	if in.IsActive != nil {
		listing.IsActive = *in.IsActive
	}
	if in.IsFeatured != nil {
		listing.IsFeatured = *in.IsFeatured
	}
	listing.UpdatedAt = s.now().UTC()

	if err := s.artisans.Update(ctx, &listing.ArtisanProfile); err != nil {
		return nil, fmt.Errorf("set artisan status: %w", err)
	}

	s.log.Info().
		Str("artisan_id", id).
		Bool("is_active", listing.IsActive).
		Bool("is_featured", listing.IsFeatured).
		Str("admin_id", actor.UserID).
		Msg("artisan status changed")
	return listing, nil
}

// RecordView counts a profile view once per viewer and dedup window.
func (s *ArtisanService) RecordView(ctx context.Context, artisanID, viewerKey string) (*ports.ViewResult, error) {
	if strings.TrimSpace(artisanID) == "" {
		return nil, fmt.Errorf("%w: artisanId is required", domain.ErrInvalidInput)
	}
	if _, err := s.artisans.FindByID(ctx, artisanID); err != nil {
		return nil, fmt.Errorf("record view: %w", err)
	}

	if s.dedup != nil && viewerKey != "" {
		first, err := s.dedup.MarkFirstView(ctx, artisanID, viewerKey)
		if err != nil {
			s.log.Warn().Err(err).Str("artisan_id", artisanID).Msg("view dedup failed, counting anyway")
		} else if !first {
			s.log.Debug().Str("artisan_id", artisanID).Msg("duplicate view skipped")
			return &ports.ViewResult{Counted: false}, nil
		}
	}

	if err := s.artisans.IncrementViews(ctx, artisanID); err != nil {
		return nil, fmt.Errorf("record view: %w", err)
	}
	return &ports.ViewResult{Counted: true}, nil
}
