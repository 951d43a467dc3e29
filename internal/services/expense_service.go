package services

import (
	"context"
	"fmt"
	"log/slog"

	"expensetracker/internal/amqp"
	"expensetracker/internal/core"
)

// EventPublisher emits expense change events for downstream consumers.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, ev amqp.ExpenseEvent) error
}

// ExpenseService orchestrates expense CRUD and, when a publisher is
// configured, emits change events. Publishing is best effort: the row is
// already committed, so a publish failure is logged and never surfaced.
type ExpenseService struct {
	expenses  ExpenseStore
	publisher EventPublisher
}

func NewExpenseService(expenses ExpenseStore, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{expenses: expenses, publisher: publisher}
}

func (s *ExpenseService) Create(ctx context.Context, ownerID int64, e core.Expense) (core.Expense, error) {
	if err := requireOwner(ownerID); err != nil {
		return core.Expense{}, err
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	created, err := s.expenses.CreateExpense(ctx, ownerID, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	s.publish(ctx, amqp.ActionCreated, created)
	return created, nil
}

func (s *ExpenseService) List(ctx context.Context, ownerID int64, f core.ExpenseFilter) ([]core.Expense, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	return s.expenses.ListExpenses(ctx, ownerID, f)
}

func (s *ExpenseService) Get(ctx context.Context, ownerID, id int64) (core.Expense, error) {
	if err := requireOwner(ownerID); err != nil {
		return core.Expense{}, err
	}
	return s.expenses.GetExpense(ctx, ownerID, id)
}

func (s *ExpenseService) Update(ctx context.Context, ownerID, id int64, e core.Expense) (core.Expense, error) {
	if err := requireOwner(ownerID); err != nil {
		return core.Expense{}, err
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	updated, err := s.expenses.UpdateExpense(ctx, ownerID, id, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}

	s.publish(ctx, amqp.ActionUpdated, updated)
	return updated, nil
}

func (s *ExpenseService) Delete(ctx context.Context, ownerID, id int64) (core.Expense, error) {
	if err := requireOwner(ownerID); err != nil {
		return core.Expense{}, err
	}

	deleted, err := s.expenses.DeleteExpense(ctx, ownerID, id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("delete expense: %w", err)
	}

	s.publish(ctx, amqp.ActionDeleted, deleted)
	return deleted, nil
}

func (s *ExpenseService) publish(ctx context.Context, action amqp.Action, e core.Expense) {
	if s.publisher == nil {
		return
	}
	ev := amqp.NewExpenseEvent(action, e.ID, e.OwnerID)
	if err := s.publisher.PublishExpenseEvent(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"action", action, "expense_id", e.ID, "error", err)
	}
}

func requireOwner(ownerID int64) error {
	if ownerID <= 0 {
		return &core.ValidationError{Field: "owner_id", Reason: "must be present"}
	}
	return nil
}
