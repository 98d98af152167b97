package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/9rib/marketplace-api/internal/core/domain"
	"github.com/9rib/marketplace-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// requireAdmin checks the caller's stored profile. The role claim carried by
// the token is not trusted for privileged operations.
func requireAdmin(ctx context.Context, profiles ports.ProfileRepository, actor ports.Actor) error {
	if !actor.Authenticated() {
		return domain.ErrUnauthenticated
	}
	p, err := profiles.FindByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return domain.ErrForbidden
		}
		return fmt.Errorf("%w: load caller profile: %v", domain.ErrInternal, err)
	}
	if !p.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// normalizePage applies defaults and caps to 1-based pagination parameters.
func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 || total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
