package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"expensetracker/internal/core"
)

// CreateUser inserts a user and returns the assigned id. Email uniqueness
// is enforced by the schema constraint, so the invariant holds even under
// concurrent inserts; a violation surfaces as core.ErrEmailTaken.
func (r *Repository) CreateUser(ctx context.Context, u core.User) (int64, error) {
	const op = "storage.CreateUser"

	now := time.Now().UTC()
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, email, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		u.Username, u.Email, u.PasswordHash, u.Role, now, now,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, core.ErrEmailTaken
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GetUserByEmail returns the user with the given (normalized) email,
// including the password hash. It exists for credential verification;
// other reads go through GetUserByID or ListUsers, which omit the hash.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	const op = "storage.GetUserByEmail"

	var u core.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, role, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, core.ErrNotFound
		}
		return core.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

// GetUserByID returns a user's public fields. The password hash is never
// selected.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (core.User, error) {
	const op = "storage.GetUserByID"

	var u core.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, email, role, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, core.ErrNotFound
		}
		return core.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

// ListUsers returns all users ordered by id ascending, without hashes.
func (r *Repository) ListUsers(ctx context.Context) ([]core.User, error) {
	const op = "storage.ListUsers"

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, email, role, created_at, updated_at
		 FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		var u core.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}
