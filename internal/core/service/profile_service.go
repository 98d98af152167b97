package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/9rib/marketplace-api/internal/core/domain"
	"github.com/9rib/marketplace-api/internal/core/ports"
)

// ProfileService implements the caller's own account operations.
type ProfileService struct {
	repo ports.ProfileRepository
}

func NewProfileService(repo ports.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

func (s *ProfileService) Me(ctx context.Context, actor ports.Actor) (*domain.Profile, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	p, err := s.repo.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	return p, nil
}

// UpdateMe edits contact fields only; role and verification are not self-editable.
func (s *ProfileService) UpdateMe(ctx context.Context, actor ports.Actor, in ports.UpdateProfileInput) (*domain.Profile, error) {
	p, err := s.Me(ctx, actor)
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		p.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		p.Address = strings.TrimSpace(*in.Address)
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}
