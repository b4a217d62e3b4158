package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/randusr/internal/models"
	"github.com/desertthunder/randusr/internal/shared"
)

const userColumns = `u.id, u.title, u.first_name, u.last_name, u.gender, u.email, u.thumbnail, u.nationality, u.birthday`

// UserRepository persists [models.User] records.
type UserRepository struct {
	db querier
}

// NewUserRepository creates a new [UserRepository] over a database or transaction.
func NewUserRepository(db querier) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert inserts the user or replaces the stored fields when the ID already exists.
//
// The existing row is updated in place so dependent address and result rows survive.
func (r *UserRepository) Upsert(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO users (id, title, first_name, last_name, gender, email, thumbnail, nationality, birthday, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			gender = excluded.gender,
			email = excluded.email,
			thumbnail = excluded.thumbnail,
			nationality = excluded.nationality,
			birthday = excluded.birthday,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Title, user.FirstName, user.LastName, user.Gender,
		user.Email, user.Thumbnail, user.Nationality, user.Birthday,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", user.ID, err)
	}
	return nil
}

// Get retrieves a user by ID. A missing user yields an error matching [shared.ErrUserNotFound].
func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.UserNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

// ListByResult returns the users at result positions 1..size, in position order.
func (r *UserRepository) ListByResult(ctx context.Context, size int) ([]models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN user_results r ON r.user_id = u.id
		WHERE r.result_index <= ?
		ORDER BY r.result_index ASC
	`
	return r.list(ctx, query, size)
}

// List returns every cached user ordered by last then first name.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u ORDER BY u.last_name ASC, u.first_name ASC`
	return r.list(ctx, query)
}

// Count returns the number of cached users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

func (r *UserRepository) list(ctx context.Context, query string, args ...any) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return users, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*models.User, error) {
	var u models.User
	err := s.Scan(&u.ID, &u.Title, &u.FirstName, &u.LastName, &u.Gender, &u.Email, &u.Thumbnail, &u.Nationality, &u.Birthday)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
