package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/mcp-go"

	activities "github.com/manumorante/whats-next/internal/activities/domain"
	suggestionQueries "github.com/manumorante/whats-next/internal/suggestions/application/queries"
)

type suggestionsInput struct {
	Limit      *int   `json:"limit,omitempty"`
	CategoryID *int64 `json:"category_id,omitempty"`
	At         string `json:"at,omitempty"`
}

type timeOfDayInput struct {
	Period string `json:"period" jsonschema:"required"`
}

type activeContextsInput struct {
	At string `json:"at,omitempty"`
}

func registerSuggestionTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("suggestions.get").
		Description("Suggest what to do now: pending activities scored against the current time and active contexts, best first").
		Handler(func(ctx context.Context, input suggestionsInput) ([]suggestionQueries.SuggestionDTO, error) {
			if app == nil || app.GetSuggestionsHandler == nil {
				return nil, errNoApp
			}
			at, err := parseInstant(input.At)
			if err != nil {
				return nil, err
			}
			return app.GetSuggestionsHandler.Handle(ctx, suggestionQueries.GetSuggestionsQuery{
				Now:        at,
				Limit:      input.Limit,
				CategoryID: input.CategoryID,
			})
		})

	srv.Tool("suggestions.time_of_day").
		Description("List pending activities scheduled within a period: morning, afternoon, evening or night").
		Handler(func(ctx context.Context, input timeOfDayInput) ([]activities.Activity, error) {
			if app == nil || app.ActivitiesByTimeOfDayHandler == nil {
				return nil, errNoApp
			}
			return app.ActivitiesByTimeOfDayHandler.Handle(ctx, input.Period)
		})

	srv.Tool("context.active").
		Description("List the contexts active now, or at the given RFC3339 instant").
		Handler(func(ctx context.Context, input activeContextsInput) ([]activities.Context, error) {
			if app == nil || app.GetActiveContextsHandler == nil {
				return nil, errNoApp
			}
			at, err := parseInstant(input.At)
			if err != nil {
				return nil, err
			}
			return app.GetActiveContextsHandler.Handle(ctx, at)
		})

	return nil
}

// parseInstant reads an optional RFC3339 instant. Empty means now.
func parseInstant(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format, use RFC3339: %w", err)
	}
	return t, nil
}
