package commands

import (
	"context"

	"github.com/manumorante/whats-next/internal/activities/domain"
	sharedApplication "github.com/manumorante/whats-next/internal/shared/application"
)

// CreateContextCommand contains the data needed to create a context.
// Empty times mean no bound; nil days mean every day.
type CreateContextCommand struct {
	Name      string
	Label     string
	Days      []string
	TimeStart string
	TimeEnd   string
}

// UpdateContextCommand changes the fields that are set.
type UpdateContextCommand struct {
	ID        int64
	Name      Patch[string]
	Label     Patch[string]
	Days      Patch[[]string]
	TimeStart Patch[string]
	TimeEnd   Patch[string]
}

// DeleteContextCommand identifies the context to delete.
type DeleteContextCommand struct {
	ID int64
}

// ContextHandler handles the context commands.
type ContextHandler struct {
	contexts domain.ContextRepository
	uow      sharedApplication.UnitOfWork
	events   *Events
}

// NewContextHandler creates a new ContextHandler.
func NewContextHandler(contexts domain.ContextRepository, uow sharedApplication.UnitOfWork, events *Events) *ContextHandler {
	return &ContextHandler{contexts: contexts, uow: uow, events: events}
}

// Create validates and stores a context.
func (h *ContextHandler) Create(ctx context.Context, cmd CreateContextCommand) (*domain.Context, error) {
	days, err := domain.ParseWeekdays(cmd.Days)
	if err != nil {
		return nil, err
	}
	start, err := domain.ParseOptionalClock(cmd.TimeStart)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseOptionalClock(cmd.TimeEnd)
	if err != nil {
		return nil, err
	}
	c, err := domain.NewContext(cmd.Name, cmd.Label, days, start, end)
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return h.contexts.Create(txCtx, c)
	})
	if err != nil {
		return nil, err
	}

	h.events.emit(ctx, domain.RoutingKeyContextChanged, c.ID, map[string]any{"action": "created"})
	return c, nil
}

// Update applies the patch and returns the updated context.
func (h *ContextHandler) Update(ctx context.Context, cmd UpdateContextCommand) (*domain.Context, error) {
	updated, err := sharedApplication.InUnitOfWork(ctx, h.uow, func(txCtx context.Context) (*domain.Context, error) {
		c, err := h.contexts.FindByID(txCtx, cmd.ID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, ErrContextNotFound
		}

		cmd.Name.apply(&c.Name)
		cmd.Label.apply(&c.Label)
		if cmd.Days.Set {
			if c.Days, err = domain.ParseWeekdays(cmd.Days.Value); err != nil {
				return nil, err
			}
		}
		if cmd.TimeStart.Set {
			if c.TimeStart, err = domain.ParseOptionalClock(cmd.TimeStart.Value); err != nil {
				return nil, err
			}
		}
		if cmd.TimeEnd.Set {
			if c.TimeEnd, err = domain.ParseOptionalClock(cmd.TimeEnd.Value); err != nil {
				return nil, err
			}
		}
		if err := c.Normalize(); err != nil {
			return nil, err
		}
		if err := h.contexts.Update(txCtx, c); err != nil {
			return nil, err
		}
		return c, nil
	})
	if err != nil {
		return nil, err
	}

	h.events.emit(ctx, domain.RoutingKeyContextChanged, updated.ID, map[string]any{"action": "updated"})
	return updated, nil
}

// Delete removes a context and unlinks it from its activities.
func (h *ContextHandler) Delete(ctx context.Context, cmd DeleteContextCommand) error {
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		c, err := h.contexts.FindByID(txCtx, cmd.ID)
		if err != nil {
			return err
		}
		if c == nil {
			return ErrContextNotFound
		}
		return h.contexts.Delete(txCtx, cmd.ID)
	})
	if err != nil {
		return err
	}

	h.events.emit(ctx, domain.RoutingKeyContextChanged, cmd.ID, map[string]any{"action": "deleted"})
	return nil
}
