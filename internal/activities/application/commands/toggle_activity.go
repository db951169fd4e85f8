package commands

import (
	"context"
	"time"

	"github.com/manumorante/whats-next/internal/activities/domain"
	sharedApplication "github.com/manumorante/whats-next/internal/shared/application"
)

// ToggleActivityCommand flips the completed flag of an activity.
type ToggleActivityCommand struct {
	ActivityID int64
	// At is used for the completion logged when the activity becomes
	// completed. Zero means now.
	At time.Time
}

// ToggleActivityHandler handles ToggleActivityCommand.
type ToggleActivityHandler struct {
	activities domain.ActivityRepository
	uow        sharedApplication.UnitOfWork
	events     *Events
}

// NewToggleActivityHandler creates a new ToggleActivityHandler.
func NewToggleActivityHandler(activities domain.ActivityRepository, uow sharedApplication.UnitOfWork, events *Events) *ToggleActivityHandler {
	return &ToggleActivityHandler{activities: activities, uow: uow, events: events}
}

// Handle flips is_completed and returns the new value. Marking an activity
// completed also appends to its completion log.
func (h *ToggleActivityHandler) Handle(ctx context.Context, cmd ToggleActivityCommand) (bool, error) {
	at := cmd.At
	if at.IsZero() {
		at = time.Now()
	}

	completed, err := sharedApplication.InUnitOfWork(ctx, h.uow, func(txCtx context.Context) (bool, error) {
		activity, err := h.activities.FindByID(txCtx, cmd.ActivityID)
		if err != nil {
			return false, err
		}
		if activity == nil {
			return false, ErrActivityNotFound
		}

		completed := !activity.IsCompleted
		if err := h.activities.SetCompleted(txCtx, activity.ID, completed); err != nil {
			return false, err
		}
		if completed {
			c := &domain.Completion{ActivityID: activity.ID, CompletedAt: at.UTC()}
			if err := h.activities.AddCompletion(txCtx, c); err != nil {
				return false, err
			}
		}
		return completed, nil
	})
	if err != nil {
		return false, err
	}

	h.events.emit(ctx, domain.RoutingKeyActivityToggled, cmd.ActivityID, map[string]any{"is_completed": completed})
	return completed, nil
}
