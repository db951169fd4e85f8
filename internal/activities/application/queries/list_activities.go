package queries

import (
	"context"

	"github.com/manumorante/whats-next/internal/activities/domain"
)

// ListActivitiesQuery contains the parameters for listing activities.
// Empty strings and nil pointers mean no filter.
type ListActivitiesQuery struct {
	CategoryID  *int64
	Priority    string
	EnergyLevel string
	IsCompleted *bool
}

// ListActivitiesHandler handles the ListActivitiesQuery.
type ListActivitiesHandler struct {
	activities domain.ActivityRepository
}

// NewListActivitiesHandler creates a new ListActivitiesHandler.
func NewListActivitiesHandler(activities domain.ActivityRepository) *ListActivitiesHandler {
	return &ListActivitiesHandler{activities: activities}
}

// Handle executes the ListActivitiesQuery. The result is never nil.
func (h *ListActivitiesHandler) Handle(ctx context.Context, query ListActivitiesQuery) ([]domain.Activity, error) {
	filter := domain.ActivityFilter{
		CategoryID:  query.CategoryID,
		IsCompleted: query.IsCompleted,
	}
	if query.Priority != "" {
		p, err := domain.ParsePriority(query.Priority)
		if err != nil {
			return nil, err
		}
		filter.Priority = &p
	}
	if query.EnergyLevel != "" {
		e, err := domain.ParseEnergyLevel(query.EnergyLevel)
		if err != nil {
			return nil, err
		}
		filter.EnergyLevel = &e
	}

	activities, err := h.activities.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []domain.Activity{}
	}
	return activities, nil
}
