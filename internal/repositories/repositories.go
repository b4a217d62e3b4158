// package repositories provides SQLite persistence for cached users, addresses and result indexes.
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/randusr/internal/models"
)

// querier is satisfied by both [sql.DB] and [sql.Tx] so repositories can run inside a batch transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store groups the repositories over a single database handle.
type Store struct {
	db        *sql.DB
	Users     *UserRepository
	Addresses *AddressRepository
	Results   *UserResultRepository
}

// NewStore creates a [Store] backed by db. Migrations must already be applied.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:        db,
		Users:     NewUserRepository(db),
		Addresses: NewAddressRepository(db),
		Results:   NewUserResultRepository(db),
	}
}

// SaveBatch writes a fetched batch in one transaction.
//
// For each position i the user is upserted first, then result index i+1, then the address.
// Result indexes beyond len(users) left over from a larger previous batch are removed.
// users and addresses must be parallel slices.
func (s *Store) SaveBatch(ctx context.Context, users []models.User, addresses []models.Address) error {
	if len(users) != len(addresses) {
		return fmt.Errorf("batch mismatch: %d users, %d addresses", len(users), len(addresses))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	userRepo := NewUserRepository(tx)
	addressRepo := NewAddressRepository(tx)
	resultRepo := NewUserResultRepository(tx)

	for i := range users {
		if err := userRepo.Upsert(ctx, &users[i]); err != nil {
			return err
		}

		result := models.UserResult{Index: int64(i + 1), UserID: users[i].ID}
		if err := resultRepo.Upsert(ctx, &result); err != nil {
			return err
		}

		if err := addressRepo.Upsert(ctx, &addresses[i]); err != nil {
			return err
		}
	}

	if err := resultRepo.TrimAfter(ctx, int64(len(users))); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}
