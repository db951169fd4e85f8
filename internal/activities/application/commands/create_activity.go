package commands

import (
	"context"

	"github.com/manumorante/whats-next/internal/activities/domain"
	sharedApplication "github.com/manumorante/whats-next/internal/shared/application"
)

// CreateActivityCommand contains the data needed to create an activity.
type CreateActivityCommand struct {
	Title           string
	Description     string
	CategoryID      *int64
	DurationMinutes *int
	EnergyLevel     string
	Location        string
	Priority        string
	IsRecurring     bool
	RecurrenceType  string
	ContextIDs      []int64
	TimeSlots       []TimeSlotInput
}

// CreateActivityHandler handles CreateActivityCommand.
type CreateActivityHandler struct {
	activities domain.ActivityRepository
	contexts   domain.ContextRepository
	categories domain.CategoryRepository
	uow        sharedApplication.UnitOfWork
	events     *Events
}

// NewCreateActivityHandler creates a new CreateActivityHandler.
func NewCreateActivityHandler(
	activities domain.ActivityRepository,
	contexts domain.ContextRepository,
	categories domain.CategoryRepository,
	uow sharedApplication.UnitOfWork,
	events *Events,
) *CreateActivityHandler {
	return &CreateActivityHandler{
		activities: activities,
		contexts:   contexts,
		categories: categories,
		uow:        uow,
		events:     events,
	}
}

// Handle validates and stores the activity, returning it as stored.
func (h *CreateActivityHandler) Handle(ctx context.Context, cmd CreateActivityCommand) (*domain.Activity, error) {
	priority, err := domain.ParsePriority(cmd.Priority)
	if err != nil {
		return nil, err
	}
	energy, err := domain.ParseEnergyLevel(cmd.EnergyLevel)
	if err != nil {
		return nil, err
	}
	recurrence, err := domain.ParseRecurrenceType(cmd.RecurrenceType)
	if err != nil {
		return nil, err
	}
	slots, err := parseTimeSlots(cmd.TimeSlots)
	if err != nil {
		return nil, err
	}

	activity := &domain.Activity{
		Title:           cmd.Title,
		Description:     cmd.Description,
		CategoryID:      cmd.CategoryID,
		DurationMinutes: cmd.DurationMinutes,
		EnergyLevel:     energy,
		Location:        cmd.Location,
		Priority:        priority,
		IsRecurring:     cmd.IsRecurring,
		RecurrenceType:  recurrence,
		TimeSlots:       slots,
	}
	if err := activity.Normalize(); err != nil {
		return nil, err
	}

	created, err := sharedApplication.InUnitOfWork(ctx, h.uow, func(txCtx context.Context) (*domain.Activity, error) {
		if err := ensureCategory(txCtx, h.categories, activity.CategoryID); err != nil {
			return nil, err
		}
		contexts, err := loadContexts(txCtx, h.contexts, cmd.ContextIDs)
		if err != nil {
			return nil, err
		}
		activity.Contexts = contexts

		if err := h.activities.Create(txCtx, activity); err != nil {
			return nil, err
		}
		return h.activities.FindByID(txCtx, activity.ID)
	})
	if err != nil {
		return nil, err
	}

	h.events.emit(ctx, domain.RoutingKeyActivityCreated, created.ID, map[string]any{"title": created.Title})
	return created, nil
}
