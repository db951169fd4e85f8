package commands

import (
	"context"

	"github.com/manumorante/whats-next/internal/activities/domain"
	sharedApplication "github.com/manumorante/whats-next/internal/shared/application"
)

// UpdateActivityCommand changes the fields that are set. Setting ContextIDs
// or TimeSlots replaces the whole list.
type UpdateActivityCommand struct {
	ID              int64
	Title           Patch[string]
	Description     Patch[string]
	CategoryID      Patch[*int64]
	DurationMinutes Patch[*int]
	EnergyLevel     Patch[string]
	Location        Patch[string]
	Priority        Patch[string]
	IsRecurring     Patch[bool]
	RecurrenceType  Patch[string]
	IsCompleted     Patch[bool]
	ContextIDs      Patch[[]int64]
	TimeSlots       Patch[[]TimeSlotInput]
}

// UpdateActivityHandler handles UpdateActivityCommand.
type UpdateActivityHandler struct {
	activities domain.ActivityRepository
	contexts   domain.ContextRepository
	categories domain.CategoryRepository
	uow        sharedApplication.UnitOfWork
	events     *Events
}

// NewUpdateActivityHandler creates a new UpdateActivityHandler.
func NewUpdateActivityHandler(
	activities domain.ActivityRepository,
	contexts domain.ContextRepository,
	categories domain.CategoryRepository,
	uow sharedApplication.UnitOfWork,
	events *Events,
) *UpdateActivityHandler {
	return &UpdateActivityHandler{
		activities: activities,
		contexts:   contexts,
		categories: categories,
		uow:        uow,
		events:     events,
	}
}

// Handle applies the patch and returns the updated activity.
func (h *UpdateActivityHandler) Handle(ctx context.Context, cmd UpdateActivityCommand) (*domain.Activity, error) {
	updated, err := sharedApplication.InUnitOfWork(ctx, h.uow, func(txCtx context.Context) (*domain.Activity, error) {
		activity, err := h.activities.FindByID(txCtx, cmd.ID)
		if err != nil {
			return nil, err
		}
		if activity == nil {
			return nil, ErrActivityNotFound
		}

		if err := h.apply(txCtx, activity, cmd); err != nil {
			return nil, err
		}
		if err := activity.Normalize(); err != nil {
			return nil, err
		}
		if err := h.activities.Update(txCtx, activity); err != nil {
			return nil, err
		}
		return h.activities.FindByID(txCtx, activity.ID)
	})
	if err != nil {
		return nil, err
	}

	h.events.emit(ctx, domain.RoutingKeyActivityUpdated, updated.ID, nil)
	return updated, nil
}

func (h *UpdateActivityHandler) apply(ctx context.Context, a *domain.Activity, cmd UpdateActivityCommand) error {
	cmd.Title.apply(&a.Title)
	cmd.Description.apply(&a.Description)
	cmd.Location.apply(&a.Location)
	cmd.DurationMinutes.apply(&a.DurationMinutes)
	cmd.IsRecurring.apply(&a.IsRecurring)
	cmd.IsCompleted.apply(&a.IsCompleted)

	if cmd.CategoryID.Set {
		if err := ensureCategory(ctx, h.categories, cmd.CategoryID.Value); err != nil {
			return err
		}
		a.CategoryID = cmd.CategoryID.Value
		a.Category = nil
	}
	if cmd.Priority.Set {
		p, err := domain.ParsePriority(cmd.Priority.Value)
		if err != nil {
			return err
		}
		a.Priority = p
	}
	if cmd.EnergyLevel.Set {
		e, err := domain.ParseEnergyLevel(cmd.EnergyLevel.Value)
		if err != nil {
			return err
		}
		a.EnergyLevel = e
	}
	if cmd.RecurrenceType.Set {
		r, err := domain.ParseRecurrenceType(cmd.RecurrenceType.Value)
		if err != nil {
			return err
		}
		a.RecurrenceType = r
	}
	if cmd.ContextIDs.Set {
		contexts, err := loadContexts(ctx, h.contexts, cmd.ContextIDs.Value)
		if err != nil {
			return err
		}
		a.Contexts = contexts
	}
	if cmd.TimeSlots.Set {
		slots, err := parseTimeSlots(cmd.TimeSlots.Value)
		if err != nil {
			return err
		}
		a.TimeSlots = slots
	}
	return nil
}
