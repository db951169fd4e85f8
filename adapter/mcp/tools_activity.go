package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/manumorante/whats-next/internal/activities/application/commands"
	"github.com/manumorante/whats-next/internal/activities/application/queries"
	"github.com/manumorante/whats-next/internal/activities/domain"
)

type activityListInput struct {
	CategoryID  *int64 `json:"category_id,omitempty"`
	Priority    string `json:"priority,omitempty"`
	EnergyLevel string `json:"energy_level,omitempty"`
	IsCompleted *bool  `json:"is_completed,omitempty"`
}

type activityAddInput struct {
	Title       string                   `json:"title" jsonschema:"required"`
	Description string                   `json:"description,omitempty"`
	Priority    string                   `json:"priority,omitempty"`
	EnergyLevel string                   `json:"energy_level,omitempty"`
	CategoryID  *int64                   `json:"category_id,omitempty"`
	ContextIDs  []int64                  `json:"context_ids,omitempty"`
	TimeSlots   []commands.TimeSlotInput `json:"time_slots,omitempty"`
}

type activityCompleteInput struct {
	ActivityID int64  `json:"activity_id" jsonschema:"required"`
	Notes      string `json:"notes,omitempty"`
}

type activityIDInput struct {
	ActivityID int64 `json:"activity_id" jsonschema:"required"`
}

func registerActivityTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("activity.list").
		Description("List activities, optionally filtered by category, priority, energy level or completion").
		Handler(func(ctx context.Context, input activityListInput) ([]domain.Activity, error) {
			if app == nil || app.ListActivitiesHandler == nil {
				return nil, errNoApp
			}
			return app.ListActivitiesHandler.Handle(ctx, queries.ListActivitiesQuery{
				CategoryID:  input.CategoryID,
				Priority:    input.Priority,
				EnergyLevel: input.EnergyLevel,
				IsCompleted: input.IsCompleted,
			})
		})

	srv.Tool("activity.add").
		Description("Add an activity with optional contexts and time slots").
		Handler(func(ctx context.Context, input activityAddInput) (*domain.Activity, error) {
			if app == nil || app.CreateActivityHandler == nil {
				return nil, errNoApp
			}
			return app.CreateActivityHandler.Handle(ctx, commands.CreateActivityCommand{
				Title:       input.Title,
				Description: input.Description,
				Priority:    input.Priority,
				EnergyLevel: input.EnergyLevel,
				CategoryID:  input.CategoryID,
				ContextIDs:  input.ContextIDs,
				TimeSlots:   input.TimeSlots,
			})
		})

	srv.Tool("activity.complete").
		Description("Log that an activity was done now. The activity stays pending").
		Handler(func(ctx context.Context, input activityCompleteInput) (*domain.Completion, error) {
			if app == nil || app.CompleteActivityHandler == nil {
				return nil, errNoApp
			}
			if input.ActivityID <= 0 {
				return nil, errors.New("activity_id is required")
			}
			return app.CompleteActivityHandler.Handle(ctx, commands.CompleteActivityCommand{
				ActivityID: input.ActivityID,
				Notes:      input.Notes,
			})
		})

	srv.Tool("activity.toggle").
		Description("Flip an activity between pending and completed").
		Handler(func(ctx context.Context, input activityIDInput) (map[string]any, error) {
			if app == nil || app.ToggleActivityHandler == nil {
				return nil, errNoApp
			}
			if input.ActivityID <= 0 {
				return nil, errors.New("activity_id is required")
			}
			completed, err := app.ToggleActivityHandler.Handle(ctx, commands.ToggleActivityCommand{ActivityID: input.ActivityID})
			if err != nil {
				return nil, err
			}
			return map[string]any{"activity_id": input.ActivityID, "is_completed": completed}, nil
		})

	return nil
}
