package ports

import "context"

// TxRepositories are the repositories bound to one open transaction.
type TxRepositories struct {
	Applications ApplicationRepository
	Artisans     ArtisanRepository
	Profiles     ProfileRepository
}

// Transactor runs fn inside a single database transaction. The transaction
// commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
