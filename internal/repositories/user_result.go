package repositories

import (
	"context"
	"fmt"

	"github.com/desertthunder/randusr/internal/models"
)

// UserResultRepository persists the position of each user within the latest batch.
type UserResultRepository struct {
	db querier
}

// NewUserResultRepository creates a new [UserResultRepository] over a database or transaction.
func NewUserResultRepository(db querier) *UserResultRepository {
	return &UserResultRepository{db: db}
}

// Upsert points result.Index at result.UserID, replacing whatever user held that position.
func (r *UserResultRepository) Upsert(ctx context.Context, result *models.UserResult) error {
	if result.Index < 1 {
		return fmt.Errorf("result index must be positive, got %d", result.Index)
	}

	query := `
		INSERT INTO user_results (result_index, user_id) VALUES (?, ?)
		ON CONFLICT(result_index) DO UPDATE SET user_id = excluded.user_id
	`

	if _, err := r.db.ExecContext(ctx, query, result.Index, result.UserID); err != nil {
		return fmt.Errorf("failed to upsert result %d: %w", result.Index, err)
	}
	return nil
}

// List returns all result indexes in position order.
func (r *UserResultRepository) List(ctx context.Context) ([]models.UserResult, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT result_index, user_id FROM user_results ORDER BY result_index ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	results := []models.UserResult{}
	for rows.Next() {
		var res models.UserResult
		if err := rows.Scan(&res.Index, &res.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return results, nil
}

// Count returns the number of stored result indexes, i.e. the size of the latest batch.
func (r *UserResultRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_results`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count results: %w", err)
	}
	return n, nil
}

// TrimAfter removes result indexes greater than index.
func (r *UserResultRepository) TrimAfter(ctx context.Context, index int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_results WHERE result_index > ?`, index); err != nil {
		return fmt.Errorf("failed to trim results: %w", err)
	}
	return nil
}
