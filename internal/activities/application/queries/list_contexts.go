package queries

import (
	"context"

	"github.com/manumorante/whats-next/internal/activities/domain"
)

// ListContextsHandler lists every context ordered by name.
type ListContextsHandler struct {
	contexts domain.ContextRepository
}

// NewListContextsHandler creates a new ListContextsHandler.
func NewListContextsHandler(contexts domain.ContextRepository) *ListContextsHandler {
	return &ListContextsHandler{contexts: contexts}
}

func (h *ListContextsHandler) Handle(ctx context.Context) ([]domain.Context, error) {
	contexts, err := h.contexts.List(ctx)
	if err != nil {
		return nil, err
	}
	if contexts == nil {
		contexts = []domain.Context{}
	}
	return contexts, nil
}

// ListCategoriesHandler lists every category ordered by name.
type ListCategoriesHandler struct {
	categories domain.CategoryRepository
}

// NewListCategoriesHandler creates a new ListCategoriesHandler.
func NewListCategoriesHandler(categories domain.CategoryRepository) *ListCategoriesHandler {
	return &ListCategoriesHandler{categories: categories}
}

func (h *ListCategoriesHandler) Handle(ctx context.Context) ([]domain.Category, error) {
	categories, err := h.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}
