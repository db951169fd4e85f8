package queries

import (
	"context"
	"time"

	activities "github.com/manumorante/whats-next/internal/activities/domain"
	"github.com/manumorante/whats-next/internal/suggestions/domain"
)

// GetActiveContextsHandler returns the contexts active at an instant.
type GetActiveContextsHandler struct {
	contexts ContextSource
	settings Settings
}

// NewGetActiveContextsHandler creates a new GetActiveContextsHandler.
func NewGetActiveContextsHandler(contextSource ContextSource, settings Settings) *GetActiveContextsHandler {
	return &GetActiveContextsHandler{contexts: contextSource, settings: settings.withDefaults()}
}

// Handle evaluates at now, or at the current time when now is zero.
func (h *GetActiveContextsHandler) Handle(ctx context.Context, now time.Time) ([]activities.Context, error) {
	now = h.settings.snapshot(now)
	contexts, err := loadActiveContexts(ctx, h.contexts, h.settings.Mode, now)
	if err != nil {
		return nil, err
	}
	if h.settings.Mode == ContextModeStore {
		return domain.FromActiveContexts(contexts).Active(now), nil
	}
	return domain.ActiveContexts(contexts, now), nil
}

// ActivitiesByTimeOfDayHandler lists pending activities scheduled within a
// period of the day.
type ActivitiesByTimeOfDayHandler struct {
	activities ActivitySource
}

// NewActivitiesByTimeOfDayHandler creates a new ActivitiesByTimeOfDayHandler.
func NewActivitiesByTimeOfDayHandler(activitySource ActivitySource) *ActivitiesByTimeOfDayHandler {
	return &ActivitiesByTimeOfDayHandler{activities: activitySource}
}

// Handle parses the period name and filters the pending activities.
func (h *ActivitiesByTimeOfDayHandler) Handle(ctx context.Context, period string) ([]activities.Activity, error) {
	tod, err := domain.ParseTimeOfDay(period)
	if err != nil {
		return nil, err
	}
	pending := false
	all, err := h.activities.List(ctx, activities.ActivityFilter{IsCompleted: &pending})
	if err != nil {
		return nil, unavailable("activities", err)
	}
	return domain.FilterByTimeOfDay(all, tod), nil
}
