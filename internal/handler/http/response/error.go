package response

import (
	"errors"
	"net/http"

	"github.com/MrChorusman/team-calendar-go/internal/domain/calendar"
	"github.com/MrChorusman/team-calendar-go/internal/domain/employee"
	"github.com/MrChorusman/team-calendar-go/internal/pkg/validator"
	"github.com/MrChorusman/team-calendar-go/internal/service/session"
)

// HandleError maps domain errors to HTTP responses. Raw transport errors
// never reach this point; the gateway layer folds them into the calendar
// error taxonomy first.
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var mutationErr *calendar.MutationError
	if errors.As(err, &mutationErr) {
		MutationFailed(w, mutationErr.StatusCode, mutationErr.Message)
		return
	}

	switch {
	case errors.Is(err, calendar.ErrAggregationFailed):
		AggregationFailed(w, err.Error())
	case errors.Is(err, calendar.ErrStaleAggregation):
		Conflict(w, "View superseded by a newer request")
	case errors.Is(err, calendar.ErrInvalidScope):
		BadRequest(w, "Invalid view scope", nil)
	case errors.Is(err, calendar.ErrInvalidRequestData):
		BadRequest(w, "Invalid request data", nil)
	case errors.Is(err, session.ErrNoActiveView):
		Conflict(w, "No active calendar view to reload")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrDirectoryFailed):
		AggregationFailed(w, "Employee directory unavailable")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
