package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/MrChorusman/team-calendar-go/internal/domain/calendar"
	"github.com/MrChorusman/team-calendar-go/internal/domain/employee"
	"github.com/MrChorusman/team-calendar-go/internal/handler/http/response"
	"github.com/MrChorusman/team-calendar-go/internal/service/mutation"
	"github.com/MrChorusman/team-calendar-go/internal/service/session"
	"github.com/go-chi/chi/v5"
)

type CalendarHandler interface {
	GetSnapshot(w http.ResponseWriter, r *http.Request)
	CreateActivity(w http.ResponseWriter, r *http.Request)
	DeleteActivity(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	directory   employee.Directory
	session     *session.Session
	coordinator *mutation.Coordinator
}

func NewCalendarHandler(directory employee.Directory, sess *session.Session, coordinator *mutation.Coordinator) CalendarHandler {
	return &calendarHandlerImpl{
		directory:   directory,
		session:     sess,
		coordinator: coordinator,
	}
}

// parseScope builds the view scope from query parameters. Missing view/year
// default to the current month, matching the console's initial screen.
func parseScope(r *http.Request) (calendar.ViewScope, error) {
	q := r.URL.Query()
	now := time.Now()

	year := now.Year()
	if raw := q.Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return calendar.ViewScope{}, calendar.ErrInvalidScope
		}
		year = parsed
	}

	switch q.Get("view") {
	case "", string(calendar.ViewMonthly):
		month := int(now.Month())
		if raw := q.Get("month"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				return calendar.ViewScope{}, calendar.ErrInvalidScope
			}
			month = parsed
		}
		scope := calendar.MonthlyScope(year, month)
		return scope, scope.Validate()
	case string(calendar.ViewAnnual):
		scope := calendar.AnnualScope(year)
		return scope, scope.Validate()
	default:
		return calendar.ViewScope{}, calendar.ErrInvalidScope
	}
}

// resolveEmployees applies the employee_id and team_id filters against the
// directory. No filters means the whole directory.
func (h *calendarHandlerImpl) resolveEmployees(r *http.Request) ([]employee.Employee, error) {
	employees, err := h.directory.ListEmployees(r.Context())
	if err != nil {
		return nil, err
	}

	q := r.URL.Query()
	if teamID := q.Get("team_id"); teamID != "" {
		employees = employee.FilterByTeam(employees, teamID)
	}
	if ids := q["employee_id"]; len(ids) > 0 {
		employees = employee.FilterByIDs(employees, ids)
		if len(employees) == 0 {
			return nil, employee.ErrEmployeeNotFound
		}
	}
	return employees, nil
}

// GetSnapshot sets the session view from the request filters and returns a
// freshly aggregated snapshot.
func (h *calendarHandlerImpl) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	scope, err := parseScope(r)
	if err != nil {
		response.BadRequest(w, "Invalid view scope", nil)
		return
	}

	employees, err := h.resolveEmployees(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	snapshot, err := h.session.SetView(r.Context(), employees, scope)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, snapshot)
}

// CreateActivity creates one activity and responds with the re-aggregated
// snapshot.
func (h *calendarHandlerImpl) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req calendar.CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateActivity decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	snapshot, err := h.coordinator.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Activity created successfully", snapshot)
}

// DeleteActivity deletes one activity and responds with the re-aggregated
// snapshot.
func (h *calendarHandlerImpl) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	activityID := chi.URLParam(r, "id")
	if activityID == "" {
		response.BadRequest(w, "Activity ID is required", nil)
		return
	}

	snapshot, err := h.coordinator.Delete(r.Context(), activityID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Activity deleted successfully", snapshot)
}

// Stream pushes snapshot and error events to the view layer over SSE, so
// consumers converge on the latest generation without polling.
func (h *calendarHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.session.Subscribe()
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
