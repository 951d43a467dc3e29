package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"expensetracker/internal/core"
)

// CreateExpense inserts an expense for the given owner and returns the
// stored row.
func (r *Repository) CreateExpense(ctx context.Context, ownerID int64, e core.Expense) (core.Expense, error) {
	const op = "storage.CreateExpense"

	now := time.Now().UTC()
	e.OwnerID = ownerID
	e.CreatedAt = now
	e.UpdatedAt = now
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO expenses (owner_id, amount_cents, vendor, description, incurred_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		ownerID, e.Amount.Cents, e.Vendor, e.Description, e.IncurredAt, now, now,
	).Scan(&e.ID)
	if err != nil {
		return core.Expense{}, fmt.Errorf("%s: %w", op, err)
	}

	return e, nil
}

// ListExpenses returns an owner's expenses, newest first by incurred_at.
// Filter fields narrow the result: From/To bound the incurred date range,
// Vendor matches exactly.
func (r *Repository) ListExpenses(ctx context.Context, ownerID int64, f core.ExpenseFilter) ([]core.Expense, error) {
	const op = "storage.ListExpenses"

	var sb strings.Builder
	sb.WriteString(`SELECT id, owner_id, amount_cents, vendor, description, incurred_at, created_at, updated_at
		FROM expenses WHERE owner_id = $1`)
	args := []any{ownerID}

	if !f.From.IsZero() {
		args = append(args, f.From)
		sb.WriteString(" AND incurred_at >= $" + strconv.Itoa(len(args)))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		sb.WriteString(" AND incurred_at <= $" + strconv.Itoa(len(args)))
	}
	if f.Vendor != "" {
		args = append(args, f.Vendor)
		sb.WriteString(" AND vendor = $" + strconv.Itoa(len(args)))
	}
	sb.WriteString(" ORDER BY incurred_at DESC, id DESC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Amount.Cents, &e.Vendor, &e.Description,
			&e.IncurredAt, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return expenses, nil
}

// GetExpense returns an expense by id, scoped to its owner. An id that
// belongs to a different owner is indistinguishable from an absent one.
func (r *Repository) GetExpense(ctx context.Context, ownerID, id int64) (core.Expense, error) {
	const op = "storage.GetExpense"

	var e core.Expense
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, amount_cents, vendor, description, incurred_at, created_at, updated_at
		 FROM expenses WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	).Scan(&e.ID, &e.OwnerID, &e.Amount.Cents, &e.Vendor, &e.Description,
		&e.IncurredAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Expense{}, core.ErrNotFound
		}
		return core.Expense{}, fmt.Errorf("%s: %w", op, err)
	}

	return e, nil
}

// UpdateExpense replaces the mutable fields of an owner's expense and
// returns the updated row. Same owner scoping as GetExpense.
func (r *Repository) UpdateExpense(ctx context.Context, ownerID, id int64, e core.Expense) (core.Expense, error) {
	const op = "storage.UpdateExpense"

	now := time.Now().UTC()
	e.ID = id
	e.OwnerID = ownerID
	e.UpdatedAt = now
	err := r.db.QueryRowContext(ctx,
		`UPDATE expenses
		 SET amount_cents = $1, vendor = $2, description = $3, incurred_at = $4, updated_at = $5
		 WHERE id = $6 AND owner_id = $7
		 RETURNING created_at`,
		e.Amount.Cents, e.Vendor, e.Description, e.IncurredAt, now, id, ownerID,
	).Scan(&e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Expense{}, core.ErrNotFound
		}
		return core.Expense{}, fmt.Errorf("%s: %w", op, err)
	}

	return e, nil
}

// DeleteExpense removes an owner's expense and returns the deleted row.
func (r *Repository) DeleteExpense(ctx context.Context, ownerID, id int64) (core.Expense, error) {
	const op = "storage.DeleteExpense"

	var e core.Expense
	err := r.db.QueryRowContext(ctx,
		`DELETE FROM expenses WHERE id = $1 AND owner_id = $2
		 RETURNING id, owner_id, amount_cents, vendor, description, incurred_at, created_at, updated_at`,
		id, ownerID,
	).Scan(&e.ID, &e.OwnerID, &e.Amount.Cents, &e.Vendor, &e.Description,
		&e.IncurredAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Expense{}, core.ErrNotFound
		}
		return core.Expense{}, fmt.Errorf("%s: %w", op, err)
	}

	return e, nil
}
