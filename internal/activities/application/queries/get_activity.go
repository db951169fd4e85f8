package queries

import (
	"context"
	"errors"

	"github.com/manumorante/whats-next/internal/activities/domain"
)

// ErrActivityNotFound is returned when an activity is not found.
var ErrActivityNotFound = errors.New("activity not found")

// GetActivityQuery identifies the activity to fetch.
type GetActivityQuery struct {
	ID int64
}

// GetActivityHandler handles the GetActivityQuery.
type GetActivityHandler struct {
	activities domain.ActivityRepository
}

// NewGetActivityHandler creates a new GetActivityHandler.
func NewGetActivityHandler(activities domain.ActivityRepository) *GetActivityHandler {
	return &GetActivityHandler{activities: activities}
}

// Handle executes the GetActivityQuery.
func (h *GetActivityHandler) Handle(ctx context.Context, query GetActivityQuery) (*domain.Activity, error) {
	activity, err := h.activities.FindByID(ctx, query.ID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}
	return activity, nil
}

// ListCompletionsQuery identifies the activity whose log is listed.
type ListCompletionsQuery struct {
	ActivityID int64
}

// ListCompletionsHandler handles the ListCompletionsQuery.
type ListCompletionsHandler struct {
	activities domain.ActivityRepository
}

// NewListCompletionsHandler creates a new ListCompletionsHandler.
func NewListCompletionsHandler(activities domain.ActivityRepository) *ListCompletionsHandler {
	return &ListCompletionsHandler{activities: activities}
}

// Handle returns the completion log, newest first.
func (h *ListCompletionsHandler) Handle(ctx context.Context, query ListCompletionsQuery) ([]domain.Completion, error) {
	activity, err := h.activities.FindByID(ctx, query.ActivityID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}
	completions, err := h.activities.ListCompletions(ctx, query.ActivityID)
	if err != nil {
		return nil, err
	}
	if completions == nil {
		completions = []domain.Completion{}
	}
	return completions, nil
}
