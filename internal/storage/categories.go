package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"expensetracker/internal/core"
)

// CreateCategory inserts a category. A nil ownerID creates a global
// (shared) category. Duplicate names within the same owner scope surface
// as core.ErrCategoryExists.
func (r *Repository) CreateCategory(ctx context.Context, name string, ownerID *int64) (core.Category, error) {
	const op = "storage.CreateCategory"

	now := time.Now().UTC()
	c := core.Category{Name: name, OwnerID: ownerID, CreatedAt: now}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO categories (name, owner_id, created_at)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		name, nullableID(ownerID), now,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return core.Category{}, core.ErrCategoryExists
		}
		return core.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

// ListCategories returns the categories visible to an owner: the global
// ones plus the owner's. A nil owner sees only the global set.
func (r *Repository) ListCategories(ctx context.Context, ownerID *int64) ([]core.Category, error) {
	const op = "storage.ListCategories"

	query := `SELECT id, name, owner_id, created_at FROM categories WHERE owner_id IS NULL ORDER BY id ASC`
	args := []any{}
	if ownerID != nil {
		query = `SELECT id, name, owner_id, created_at FROM categories
		         WHERE owner_id IS NULL OR owner_id = $1 ORDER BY id ASC`
		args = append(args, *ownerID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return categories, nil
}

// UpdateCategory renames a category and returns the updated row.
func (r *Repository) UpdateCategory(ctx context.Context, id int64, name string) (core.Category, error) {
	const op = "storage.UpdateCategory"

	c := core.Category{ID: id, Name: name}
	var owner sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`UPDATE categories SET name = $1 WHERE id = $2
		 RETURNING owner_id, created_at`,
		name, id,
	).Scan(&owner, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Category{}, core.ErrNotFound
		}
		if isUniqueViolation(err) {
			return core.Category{}, core.ErrCategoryExists
		}
		return core.Category{}, fmt.Errorf("%s: %w", op, err)
	}
	if owner.Valid {
		c.OwnerID = &owner.Int64
	}

	return c, nil
}

// DeleteCategory removes a category and returns the deleted row.
func (r *Repository) DeleteCategory(ctx context.Context, id int64) (core.Category, error) {
	const op = "storage.DeleteCategory"

	c := core.Category{ID: id}
	var owner sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`DELETE FROM categories WHERE id = $1
		 RETURNING name, owner_id, created_at`,
		id,
	).Scan(&c.Name, &owner, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Category{}, core.ErrNotFound
		}
		return core.Category{}, fmt.Errorf("%s: %w", op, err)
	}
	if owner.Valid {
		c.OwnerID = &owner.Int64
	}

	return c, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (core.Category, error) {
	var c core.Category
	var owner sql.NullInt64
	if err := row.Scan(&c.ID, &c.Name, &owner, &c.CreatedAt); err != nil {
		return core.Category{}, err
	}
	if owner.Valid {
		c.OwnerID = &owner.Int64
	}
	return c, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
