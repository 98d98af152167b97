package sqlstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/9rib/marketplace-api/internal/core/domain"
	"github.com/9rib/marketplace-api/internal/core/ports"
)

// ReferenceRepository implements ports.ReferenceRepository using gorm.
type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

var _ ports.ReferenceRepository = (*ReferenceRepository)(nil)

func (r *ReferenceRepository) ActiveCategories(ctx context.Context) ([]domain.Category, error) {
	var rows []categoryModel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Category, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.Category{
			ID:        m.ID,
			Name:      m.Name,
			NameAr:    m.NameAr,
			Slug:      m.Slug,
			Icon:      m.Icon,
			IsActive:  m.IsActive,
			SortOrder: m.SortOrder,
		})
	}
	return out, nil
}

func (r *ReferenceRepository) ActiveCities(ctx context.Context) ([]domain.City, error) {
	var rows []cityModel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.City, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.City{
			ID:       m.ID,
			Name:     m.Name,
			NameAr:   m.NameAr,
			Region:   m.Region,
			IsActive: m.IsActive,
		})
	}
	return out, nil
}

// SeedReference inserts the default categories and cities. Existing rows are kept.
func SeedReference(ctx context.Context, db *gorm.DB) error {
	categories := []categoryModel{
		{ID: "cat-plumbing", Name: "Plomberie", NameAr: "السباكة", Slug: "plomberie", Icon: "wrench", IsActive: true, SortOrder: 1},
		{ID: "cat-electricity", Name: "Électricité", NameAr: "الكهرباء", Slug: "electricite", Icon: "zap", IsActive: true, SortOrder: 2},
		{ID: "cat-carpentry", Name: "Menuiserie", NameAr: "النجارة", Slug: "menuiserie", Icon: "hammer", IsActive: true, SortOrder: 3},
		{ID: "cat-painting", Name: "Peinture", NameAr: "الصباغة", Slug: "peinture", Icon: "paintbrush", IsActive: true, SortOrder: 4},
		{ID: "cat-masonry", Name: "Maçonnerie", NameAr: "البناء", Slug: "maconnerie", Icon: "brick-wall", IsActive: true, SortOrder: 5},
		{ID: "cat-zellige", Name: "Zellige", NameAr: "الزليج", Slug: "zellige", Icon: "grid", IsActive: true, SortOrder: 6},
	}
	cities := []cityModel{
		{ID: "city-casablanca", Name: "Casablanca", NameAr: "الدار البيضاء", Region: "Casablanca-Settat", IsActive: true},
		{ID: "city-rabat", Name: "Rabat", NameAr: "الرباط", Region: "Rabat-Salé-Kénitra", IsActive: true},
		{ID: "city-marrakech", Name: "Marrakech", NameAr: "مراكش", Region: "Marrakech-Safi", IsActive: true},
		{ID: "city-fes", Name: "Fès", NameAr: "فاس", Region: "Fès-Meknès", IsActive: true},
		{ID: "city-tanger", Name: "Tanger", NameAr: "طنجة", Region: "Tanger-Tétouan-Al Hoceïma", IsActive: true},
		{ID: "city-agadir", Name: "Agadir", NameAr: "أكادير", Region: "Souss-Massa", IsActive: true},
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&cities).Error
	})
}
