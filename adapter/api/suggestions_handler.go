package api

import (
	"context"
	"net/http"

	suggestionQueries "github.com/manumorante/whats-next/internal/suggestions/application/queries"
	"github.com/manumorante/whats-next/pkg/observability"
)

const opGetSuggestions = "suggestions.get"

// getSuggestions handles GET /api/suggestions?limit=&category=&at=.
func (s *Server) getSuggestions(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	category, err := queryInt64(r, "category")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	at, err := queryTime(r, "at")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	query := suggestionQueries.GetSuggestionsQuery{
		Now:        at,
		Limit:      limit,
		CategoryID: category,
	}
	result, err := observability.TimeOperationResult(r.Context(), s.logger, s.metrics, opGetSuggestions,
		func(ctx context.Context) ([]suggestionQueries.SuggestionDTO, error) {
			return s.handlers.GetSuggestions.Handle(ctx, query)
		})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.metrics.Counter(observability.MetricSuggestionsServed, int64(len(result)))
	writeJSON(w, http.StatusOK, result)
}

// getActivitiesByTimeOfDay handles GET /api/suggestions/time-of-day/{period}.
func (s *Server) getActivitiesByTimeOfDay(w http.ResponseWriter, r *http.Request) {
	result, err := s.handlers.ActivitiesByTimeOfDay.Handle(r.Context(), r.PathValue("period"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
