package commands

import (
	"context"
	"strings"
	"time"

	"github.com/manumorante/whats-next/internal/activities/domain"
	sharedApplication "github.com/manumorante/whats-next/internal/shared/application"
)

// CompleteActivityCommand logs that an activity was done.
type CompleteActivityCommand struct {
	ActivityID int64
	Notes      string
	// At is the completion time. Zero means now.
	At time.Time
}

// CompleteActivityHandler handles CompleteActivityCommand.
type CompleteActivityHandler struct {
	activities domain.ActivityRepository
	uow        sharedApplication.UnitOfWork
	events     *Events
}

// NewCompleteActivityHandler creates a new CompleteActivityHandler.
func NewCompleteActivityHandler(activities domain.ActivityRepository, uow sharedApplication.UnitOfWork, events *Events) *CompleteActivityHandler {
	return &CompleteActivityHandler{activities: activities, uow: uow, events: events}
}

// Handle appends a completion. It does not change is_completed, so recurring
// activities stay eligible for suggestions.
func (h *CompleteActivityHandler) Handle(ctx context.Context, cmd CompleteActivityCommand) (*domain.Completion, error) {
	at := cmd.At
	if at.IsZero() {
		at = time.Now()
	}

	completion, err := sharedApplication.InUnitOfWork(ctx, h.uow, func(txCtx context.Context) (*domain.Completion, error) {
		activity, err := h.activities.FindByID(txCtx, cmd.ActivityID)
		if err != nil {
			return nil, err
		}
		if activity == nil {
			return nil, ErrActivityNotFound
		}

		c := &domain.Completion{
			ActivityID:  cmd.ActivityID,
			CompletedAt: at.UTC(),
			Notes:       strings.TrimSpace(cmd.Notes),
		}
		if err := h.activities.AddCompletion(txCtx, c); err != nil {
			return nil, err
		}
		return c, nil
	})
	if err != nil {
		return nil, err
	}

	h.events.emit(ctx, domain.RoutingKeyActivityCompleted, cmd.ActivityID, map[string]any{"completion_id": completion.ID})
	return completion, nil
}
