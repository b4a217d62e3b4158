package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/randusr/internal/models"
	"github.com/desertthunder/randusr/internal/shared"
)

// AddressRepository persists [models.Address] records, one per user.
type AddressRepository struct {
	db querier
}

// NewAddressRepository creates a new [AddressRepository] over a database or transaction.
func NewAddressRepository(db querier) *AddressRepository {
	return &AddressRepository{db: db}
}

// Upsert inserts or replaces the address owned by address.UserID. The owning user must exist.
func (r *AddressRepository) Upsert(ctx context.Context, address *models.Address) error {
	if err := address.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO user_addresses (user_id, street, city, state, country, postcode)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			street = excluded.street,
			city = excluded.city,
			state = excluded.state,
			country = excluded.country,
			postcode = excluded.postcode
	`

	_, err := r.db.ExecContext(ctx, query,
		address.UserID, address.Street, address.City, address.State, address.Country, address.Postcode,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert address for %s: %w", address.UserID, err)
	}
	return nil
}

// GetByUserID retrieves the address of a user. A missing address yields an error matching [shared.ErrAddressNotFound].
func (r *AddressRepository) GetByUserID(ctx context.Context, userID string) (*models.Address, error) {
	query := `
		SELECT user_id, street, city, state, country, postcode
		FROM user_addresses
		WHERE user_id = ?
	`

	var a models.Address
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&a.UserID, &a.Street, &a.City, &a.State, &a.Country, &a.Postcode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.AddressNotFound(userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query address: %w", err)
	}
	return &a, nil
}
