// Package services orchestrates the domain operations between the HTTP
// boundary and the stores. Stores are consumed through interfaces so
// tests can substitute in-memory implementations for the database.
package services

import (
	"context"

	"expensetracker/internal/core"
)

type UserStore interface {
	CreateUser(ctx context.Context, u core.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (core.User, error)
	GetUserByID(ctx context.Context, id int64) (core.User, error)
	ListUsers(ctx context.Context) ([]core.User, error)
}

type CategoryStore interface {
	CreateCategory(ctx context.Context, name string, ownerID *int64) (core.Category, error)
	ListCategories(ctx context.Context, ownerID *int64) ([]core.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) (core.Category, error)
	DeleteCategory(ctx context.Context, id int64) (core.Category, error)
}

type ExpenseStore interface {
	CreateExpense(ctx context.Context, ownerID int64, e core.Expense) (core.Expense, error)
	ListExpenses(ctx context.Context, ownerID int64, f core.ExpenseFilter) ([]core.Expense, error)
	GetExpense(ctx context.Context, ownerID, id int64) (core.Expense, error)
	UpdateExpense(ctx context.Context, ownerID, id int64, e core.Expense) (core.Expense, error)
	DeleteExpense(ctx context.Context, ownerID, id int64) (core.Expense, error)
}
