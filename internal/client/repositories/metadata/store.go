package metadata

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophtodo/internal/dbx"
)

// Store adds atomic multi-key updates on top of SQLiteRepository.
type Store struct {
	*SQLiteRepository
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{SQLiteRepository: NewSQLiteRepository(db), db: db}
}

// Apply writes set and removes del in one transaction.
func (s *Store) Apply(ctx context.Context, set map[string]string, del []string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		for k, v := range set {
			if err := repo.Set(ctx, k, v); err != nil {
				return err
			}
		}
		return repo.Delete(ctx, del...)
	})
}
