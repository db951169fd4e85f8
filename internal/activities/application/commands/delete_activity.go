package commands

import (
	"context"

	"github.com/manumorante/whats-next/internal/activities/domain"
	sharedApplication "github.com/manumorante/whats-next/internal/shared/application"
)

// DeleteActivityCommand identifies the activity to delete.
type DeleteActivityCommand struct {
	ID int64
}

// DeleteActivityHandler handles DeleteActivityCommand.
type DeleteActivityHandler struct {
	activities domain.ActivityRepository
	uow        sharedApplication.UnitOfWork
	events     *Events
}

// NewDeleteActivityHandler creates a new DeleteActivityHandler.
func NewDeleteActivityHandler(activities domain.ActivityRepository, uow sharedApplication.UnitOfWork, events *Events) *DeleteActivityHandler {
	return &DeleteActivityHandler{activities: activities, uow: uow, events: events}
}

// Handle deletes the activity with its schedule and completion log.
func (h *DeleteActivityHandler) Handle(ctx context.Context, cmd DeleteActivityCommand) error {
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		activity, err := h.activities.FindByID(txCtx, cmd.ID)
		if err != nil {
			return err
		}
		if activity == nil {
			return ErrActivityNotFound
		}
		return h.activities.Delete(txCtx, cmd.ID)
	})
	if err != nil {
		return err
	}

	h.events.emit(ctx, domain.RoutingKeyActivityDeleted, cmd.ID, nil)
	return nil
}
