package sqlstore

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/9rib/marketplace-api/internal/core/domain"
	"github.com/9rib/marketplace-api/internal/core/ports"
)

// Columns overwritten when validation re-runs for a user who already has a listing.
var upsertColumns = []string{
	"category_id",
	"city_id",
	"business_name",
	"description",
	"experience_years",
	"specialties",
	"is_verified",
	"verification_date",
	"is_active",
	"updated_at",
}

const searchExpr = "LOWER(COALESCE(a.business_name, '') || ' ' || COALESCE(a.description, '') || ' ' || " +
	"COALESCE(a.address, '') || ' ' || COALESCE(p.full_name, '')) LIKE ? ESCAPE '\\'"

// ArtisanRepository implements ports.ArtisanRepository using gorm.
type ArtisanRepository struct {
	db *gorm.DB
}

func NewArtisanRepository(db *gorm.DB) *ArtisanRepository {
	return &ArtisanRepository{db: db}
}

var _ ports.ArtisanRepository = (*ArtisanRepository)(nil)

// UpsertByUser inserts p or overwrites the application-derived columns of the
// listing already owned by p.UserID. p.ID is set to the stored row's id.
func (r *ArtisanRepository) UpsertByUser(ctx context.Context, p *domain.ArtisanProfile) error {
	db := r.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(artisanFromDomain(p)).Error
	if err != nil {
		return err
	}

	var stored artisanModel
	if err := db.Select("id", "created_at").Where("user_id = ?", p.UserID).First(&stored).Error; err != nil {
		return err
	}
	p.ID = stored.ID
	p.CreatedAt = stored.CreatedAt
	return nil
}

func (r *ArtisanRepository) FindByID(ctx context.Context, id string) (*domain.ArtisanListing, error) {
	var rows []artisanListingRow
	err := r.listing(ctx).Where("a.id = ?", id).Limit(1).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrArtisanNotFound
	}
	return rows[0].toDomain(), nil
}

func (r *ArtisanRepository) FindByUserID(ctx context.Context, userID string) (*domain.ArtisanProfile, error) {
	var m artisanModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrArtisanNotFound
	}
	if err != nil {
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *ArtisanRepository) List(ctx context.Context, q ports.ArtisanQuery) ([]*domain.ArtisanListing, int64, error) {
	filtered := r.joined(ctx)
	if q.ActiveOnly {
		filtered = filtered.Where("a.is_active = ?", true)
	}
	if q.CategoryID != "" {
		filtered = filtered.Where("a.category_id = ?", q.CategoryID)
	}
	if q.CityID != "" {
		filtered = filtered.Where("a.city_id = ?", q.CityID)
	}
	if q.MinRating > 0 {
		filtered = filtered.Where("a.rating_average >= ?", q.MinRating)
	}
	if q.Verified != nil {
		filtered = filtered.Where("a.is_verified = ?", *q.Verified)
	}
	if term := strings.TrimSpace(q.Search); term != "" {
		filtered = filtered.Where(searchExpr, likePattern(term))
	}

	var total int64
	if err := filtered.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []artisanListingRow
	err := filtered.Select(listingColumns).
		Order("a.is_featured DESC, a.rating_average DESC, a.created_at DESC").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return toListings(rows), total, nil
}

func (r *ArtisanRepository) Top(ctx context.Context, limit int) ([]*domain.ArtisanListing, error) {
	var rows []artisanListingRow
	err := r.listing(ctx).
		Where("a.is_active = ?", true).
		Order("a.rating_average DESC, a.rating_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toListings(rows), nil
}

func (r *ArtisanRepository) Update(ctx context.Context, p *domain.ArtisanProfile) error {
	m := artisanFromDomain(p)
	res := r.db.WithContext(ctx).
		Model(&artisanModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"business_name":       m.BusinessName,
			"description":         m.Description,
			"address":             m.Address,
			"portfolio_images":    m.PortfolioImages,
			"service_radius_km":   m.ServiceRadiusKm,
			"response_time_hours": m.ResponseTimeHours,
			"is_active":           m.IsActive,
			"is_featured":         m.IsFeatured,
			"updated_at":          m.UpdatedAt,
		})
	return affected(res, domain.ErrArtisanNotFound)
}

func (r *ArtisanRepository) IncrementViews(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&artisanModel{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	return affected(res, domain.ErrArtisanNotFound)
}

const listingColumns = "a.*, COALESCE(p.full_name, '') AS owner_name, " +
	"COALESCE(c.name, '') AS category_name, COALESCE(ci.name, '') AS city_name"

func (r *ArtisanRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("artisan_profiles AS a").
		Joins("LEFT JOIN profiles p ON p.id = a.user_id").
		Joins("LEFT JOIN categories c ON c.id = a.category_id").
		Joins("LEFT JOIN cities ci ON ci.id = a.city_id")
}

func (r *ArtisanRepository) listing(ctx context.Context) *gorm.DB {
	return r.joined(ctx).Select(listingColumns)
}

func toListings(rows []artisanListingRow) []*domain.ArtisanListing {
	out := make([]*domain.ArtisanListing, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out
}

// likePattern lowercases term and escapes LIKE wildcards.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}
