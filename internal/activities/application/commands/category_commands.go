package commands

import (
	"context"

	"github.com/manumorante/whats-next/internal/activities/domain"
	sharedApplication "github.com/manumorante/whats-next/internal/shared/application"
)

// CreateCategoryCommand contains the data needed to create a category.
type CreateCategoryCommand struct {
	Name  string
	Color string
	Icon  string
}

// UpdateCategoryCommand changes the fields that are set.
type UpdateCategoryCommand struct {
	ID    int64
	Name  Patch[string]
	Color Patch[string]
	Icon  Patch[string]
}

// DeleteCategoryCommand identifies the category to delete.
type DeleteCategoryCommand struct {
	ID int64
}

// CategoryHandler handles the category commands.
type CategoryHandler struct {
	categories domain.CategoryRepository
	uow        sharedApplication.UnitOfWork
	events     *Events
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories domain.CategoryRepository, uow sharedApplication.UnitOfWork, events *Events) *CategoryHandler {
	return &CategoryHandler{categories: categories, uow: uow, events: events}
}

func (h *CategoryHandler) Create(ctx context.Context, cmd CreateCategoryCommand) (*domain.Category, error) {
	c, err := domain.NewCategory(cmd.Name, cmd.Color, cmd.Icon)
	if err != nil {
		return nil, err
	}
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return h.categories.Create(txCtx, c)
	})
	if err != nil {
		return nil, err
	}

	h.events.emit(ctx, domain.RoutingKeyCategoryChanged, c.ID, map[string]any{"action": "created"})
	return c, nil
}

func (h *CategoryHandler) Update(ctx context.Context, cmd UpdateCategoryCommand) (*domain.Category, error) {
	updated, err := sharedApplication.InUnitOfWork(ctx, h.uow, func(txCtx context.Context) (*domain.Category, error) {
		c, err := h.categories.FindByID(txCtx, cmd.ID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, ErrCategoryNotFound
		}
		cmd.Name.apply(&c.Name)
		cmd.Color.apply(&c.Color)
		cmd.Icon.apply(&c.Icon)
		if err := c.Normalize(); err != nil {
			return nil, err
		}
		if err := h.categories.Update(txCtx, c); err != nil {
			return nil, err
		}
		return c, nil
	})
	if err != nil {
		return nil, err
	}

	h.events.emit(ctx, domain.RoutingKeyCategoryChanged, updated.ID, map[string]any{"action": "updated"})
	return updated, nil
}

// Delete removes a category. Its activities become uncategorised.
func (h *CategoryHandler) Delete(ctx context.Context, cmd DeleteCategoryCommand) error {
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		c, err := h.categories.FindByID(txCtx, cmd.ID)
		if err != nil {
			return err
		}
		if c == nil {
			return ErrCategoryNotFound
		}
		return h.categories.Delete(txCtx, cmd.ID)
	})
	if err != nil {
		return err
	}

	h.events.emit(ctx, domain.RoutingKeyCategoryChanged, cmd.ID, map[string]any{"action": "deleted"})
	return nil
}
