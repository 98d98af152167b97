package sqlstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/9rib/marketplace-api/internal/core/domain"
	"github.com/9rib/marketplace-api/internal/core/ports"
)

// ProfileRepository implements ports.ProfileRepository using gorm.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

var _ ports.ProfileRepository = (*ProfileRepository)(nil)

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	err := r.db.WithContext(ctx).Create(profileFromDomain(p)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrUserExists
	}
	return err
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *ProfileRepository) findOne(ctx context.Context, query string, arg any) (*domain.Profile, error) {
	var m profileModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	res := r.db.WithContext(ctx).
		Model(&profileModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"full_name":  p.FullName,
			"phone":      p.Phone,
			"address":    p.Address,
			"updated_at": p.UpdatedAt,
		})
	return affected(res, domain.ErrProfileNotFound)
}

func (r *ProfileRepository) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	res := r.db.WithContext(ctx).
		Model(&profileModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"role":       string(role),
			"updated_at": time.Now().UTC(),
		})
	return affected(res, domain.ErrProfileNotFound)
}

// affected maps a write that matched no row to notFound.
func affected(res *gorm.DB, notFound error) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound
	}
	return nil
}
