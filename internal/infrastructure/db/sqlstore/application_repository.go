package sqlstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/9rib/marketplace-api/internal/core/domain"
	"github.com/9rib/marketplace-api/internal/core/ports"
)

// ApplicationRepository implements ports.ApplicationRepository using gorm.
type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

var _ ports.ApplicationRepository = (*ApplicationRepository)(nil)

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	return r.db.WithContext(ctx).Create(applicationFromDomain(app)).Error
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	var m applicationModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *ApplicationRepository) List(ctx context.Context, f ports.ListApplicationsFilter) ([]*domain.Application, int64, error) {
	q := r.db.WithContext(ctx).Model(&applicationModel{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []applicationModel
	err := q.Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	items := make([]*domain.Application, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toDomain())
	}
	return items, total, nil
}

func (r *ApplicationRepository) UpdateDecision(ctx context.Context, app *domain.Application) error {
	res := r.db.WithContext(ctx).
		Model(&applicationModel{}).
		Where("id = ?", app.ID).
		Updates(map[string]any{
			"status":       string(app.Status),
			"admin_notes":  app.AdminNotes,
			"processed_by": app.ProcessedBy,
			"processed_at": app.ProcessedAt,
		})
	return affected(res, domain.ErrApplicationNotFound)
}
