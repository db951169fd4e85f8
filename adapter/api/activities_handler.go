package api

import (
	"net/http"

	activityCommands "github.com/manumorante/whats-next/internal/activities/application/commands"
	activityQueries "github.com/manumorante/whats-next/internal/activities/application/queries"
)

type createActivityRequest struct {
	Title           string                           `json:"title"`
	Description     string                           `json:"description"`
	CategoryID      *int64                           `json:"category_id"`
	DurationMinutes *int                             `json:"duration_minutes"`
	EnergyLevel     string                           `json:"energy_level"`
	Location        string                           `json:"location"`
	Priority        string                           `json:"priority"`
	IsRecurring     bool                             `json:"is_recurring"`
	RecurrenceType  string                           `json:"recurrence_type"`
	ContextIDs      []int64                          `json:"context_ids"`
	TimeSlots       []activityCommands.TimeSlotInput `json:"time_slots"`
}

// updateActivityRequest leaves absent keys unchanged. A present key, even
// null, is applied.
type updateActivityRequest struct {
	Title           activityCommands.Patch[string]                           `json:"title"`
	Description     activityCommands.Patch[string]                           `json:"description"`
	CategoryID      activityCommands.Patch[*int64]                           `json:"category_id"`
	DurationMinutes activityCommands.Patch[*int]                             `json:"duration_minutes"`
	EnergyLevel     activityCommands.Patch[string]                           `json:"energy_level"`
	Location        activityCommands.Patch[string]                           `json:"location"`
	Priority        activityCommands.Patch[string]                           `json:"priority"`
	IsRecurring     activityCommands.Patch[bool]                             `json:"is_recurring"`
	RecurrenceType  activityCommands.Patch[string]                           `json:"recurrence_type"`
	IsCompleted     activityCommands.Patch[bool]                             `json:"is_completed"`
	ContextIDs      activityCommands.Patch[[]int64]                          `json:"context_ids"`
	TimeSlots       activityCommands.Patch[[]activityCommands.TimeSlotInput] `json:"time_slots"`
}

type completeActivityRequest struct {
	Notes string `json:"notes"`
}

// listActivities handles GET /api/activities?category_id=&priority=&energy_level=&is_completed=.
func (s *Server) listActivities(w http.ResponseWriter, r *http.Request) {
	category, err := queryInt64(r, "category_id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	completed, err := queryBool(r, "is_completed")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	result, err := s.handlers.ListActivities.Handle(r.Context(), activityQueries.ListActivitiesQuery{
		CategoryID:  category,
		Priority:    r.URL.Query().Get("priority"),
		EnergyLevel: r.URL.Query().Get("energy_level"),
		IsCompleted: completed,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) createActivity(w http.ResponseWriter, r *http.Request) {
	var req createActivityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	activity, err := s.handlers.CreateActivity.Handle(r.Context(), activityCommands.CreateActivityCommand{
		Title:           req.Title,
		Description:     req.Description,
		CategoryID:      req.CategoryID,
		DurationMinutes: req.DurationMinutes,
		EnergyLevel:     req.EnergyLevel,
		Location:        req.Location,
		Priority:        req.Priority,
		IsRecurring:     req.IsRecurring,
		RecurrenceType:  req.RecurrenceType,
		ContextIDs:      req.ContextIDs,
		TimeSlots:       req.TimeSlots,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

func (s *Server) getActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	activity, err := s.handlers.GetActivity.Handle(r.Context(), activityQueries.GetActivityQuery{ID: id})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

func (s *Server) updateActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req updateActivityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	activity, err := s.handlers.UpdateActivity.Handle(r.Context(), activityCommands.UpdateActivityCommand{
		ID:              id,
		Title:           req.Title,
		Description:     req.Description,
		CategoryID:      req.CategoryID,
		DurationMinutes: req.DurationMinutes,
		EnergyLevel:     req.EnergyLevel,
		Location:        req.Location,
		Priority:        req.Priority,
		IsRecurring:     req.IsRecurring,
		RecurrenceType:  req.RecurrenceType,
		IsCompleted:     req.IsCompleted,
		ContextIDs:      req.ContextIDs,
		TimeSlots:       req.TimeSlots,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

func (s *Server) deleteActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.handlers.DeleteActivity.Handle(r.Context(), activityCommands.DeleteActivityCommand{ID: id}); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// completeActivity handles POST /api/activities/{id}/complete. The body is
// optional.
func (s *Server) completeActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req completeActivityRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	completion, err := s.handlers.CompleteActivity.Handle(r.Context(), activityCommands.CompleteActivityCommand{
		ActivityID: id,
		Notes:      req.Notes,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, completion)
}

func (s *Server) toggleActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	completed, err := s.handlers.ToggleActivity.Handle(r.Context(), activityCommands.ToggleActivityCommand{ActivityID: id})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "is_completed": completed})
}

func (s *Server) listCompletions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	completions, err := s.handlers.ListCompletions.Handle(r.Context(), activityQueries.ListCompletionsQuery{ActivityID: id})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, completions)
}
