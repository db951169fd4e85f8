package api

import (
	"errors"
	"fmt"
	"net/http"

	activityCommands "github.com/manumorante/whats-next/internal/activities/application/commands"
	activityQueries "github.com/manumorante/whats-next/internal/activities/application/queries"
	activities "github.com/manumorante/whats-next/internal/activities/domain"
	suggestionQueries "github.com/manumorante/whats-next/internal/suggestions/application/queries"
	suggestions "github.com/manumorante/whats-next/internal/suggestions/domain"
)

// errBadRequest marks malformed input caught by the API itself.
var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

var notFoundErrors = []error{
	activityCommands.ErrActivityNotFound,
	activityCommands.ErrContextNotFound,
	activityCommands.ErrCategoryNotFound,
	activityQueries.ErrActivityNotFound,
}

var validationErrors = []error{
	errBadRequest,
	activities.ErrEmptyTitle,
	activities.ErrInvalidDuration,
	activities.ErrTimeSlotNoBounds,
	activities.ErrInvalidPriority,
	activities.ErrInvalidEnergyLevel,
	activities.ErrInvalidRecurrenceType,
	activities.ErrInvalidWeekday,
	activities.ErrInvalidTime,
	activities.ErrContextEmptyName,
	activities.ErrContextEmptyLabel,
	activities.ErrContextPartialWindow,
	activities.ErrCategoryEmptyName,
	activities.ErrCategoryEmptyColor,
	suggestions.ErrInvalidTimeOfDay,
}

// statusFor maps an application error to an HTTP status.
func statusFor(err error) int {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	if errors.Is(err, suggestionQueries.ErrSourceUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// fail writes the error response for err. Internal errors are logged and
// their details kept out of the response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		if status == http.StatusInternalServerError {
			writeError(w, status, "internal server error")
			return
		}
	}
	writeError(w, status, err.Error())
}
