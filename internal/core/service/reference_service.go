package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/9rib/marketplace-api/internal/core/domain"
	"github.com/9rib/marketplace-api/internal/core/ports"
)

const (
	cacheKeyCategories = "ref:categories"
	cacheKeyCities     = "ref:cities"
)

// ReferenceCache abstracts the lookup-table cache (Redis).
type ReferenceCache interface {
	// Get decodes the cached value into dst and reports whether it was present.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

// ReferenceService serves categories and cities, read-through cached.
type ReferenceService struct {
	repo  ports.ReferenceRepository
	cache ReferenceCache
	log   zerolog.Logger
}

func NewReferenceService(repo ports.ReferenceRepository, cache ReferenceCache, log zerolog.Logger) *ReferenceService {
	return &ReferenceService{repo: repo, cache: cache, log: log}
}

func (s *ReferenceService) Categories(ctx context.Context) ([]domain.Category, error) {
	return readThrough(ctx, s, cacheKeyCategories, s.repo.ActiveCategories)
}

func (s *ReferenceService) Cities(ctx context.Context) ([]domain.City, error) {
	return readThrough(ctx, s, cacheKeyCities, s.repo.ActiveCities)
}

// Refresh drops the cached lookup tables so the next read reloads them.
// Run after reference rows are seeded or edited.
func (s *ReferenceService) Refresh(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx, cacheKeyCategories, cacheKeyCities); err != nil {
		return fmt.Errorf("refresh reference cache: %w", err)
	}
	return nil
}

// readThrough serves key from the cache when possible. Cache failures are
// logged and bypassed.
func readThrough[T any](ctx context.Context, s *ReferenceService, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if s.cache != nil {
		var cached []T
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("reference cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	items, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, items); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("reference cache write failed")
		}
	}
	return items, nil
}
