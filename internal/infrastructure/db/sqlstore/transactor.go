package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/9rib/marketplace-api/internal/core/ports"
)

// Transactor implements ports.Transactor with a gorm transaction.
type Transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

var _ ports.Transactor = (*Transactor)(nil)

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(context.Context, ports.TxRepositories) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, ports.TxRepositories{
			Applications: NewApplicationRepository(tx),
			Artisans:     NewArtisanRepository(tx),
			Profiles:     NewProfileRepository(tx),
		})
	})
}
