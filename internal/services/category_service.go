package services

import (
	"context"
	"fmt"

	"expensetracker/internal/core"
)

// CategoryService is thin orchestration between the handlers and the
// category store.
type CategoryService struct {
	categories CategoryStore
}

func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

// Create adds a category. A nil ownerID creates a global category; the
// HTTP layer only permits that for admins.
func (s *CategoryService) Create(ctx context.Context, ownerID *int64, name string) (core.Category, error) {
	c := core.Category{Name: name, OwnerID: ownerID}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	created, err := s.categories.CreateCategory(ctx, name, ownerID)
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

func (s *CategoryService) List(ctx context.Context, ownerID *int64) ([]core.Category, error) {
	return s.categories.ListCategories(ctx, ownerID)
}

func (s *CategoryService) Update(ctx context.Context, id int64, name string) (core.Category, error) {
	if err := (core.Category{Name: name}).Validate(); err != nil {
		return core.Category{}, err
	}
	updated, err := s.categories.UpdateCategory(ctx, id, name)
	if err != nil {
		return core.Category{}, fmt.Errorf("update category: %w", err)
	}
	return updated, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) (core.Category, error) {
	deleted, err := s.categories.DeleteCategory(ctx, id)
	if err != nil {
		return core.Category{}, fmt.Errorf("delete category: %w", err)
	}
	return deleted, nil
}
