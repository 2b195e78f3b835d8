package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/MrChorusman/team-calendar-go/internal/domain/calendar"
)

// activityPayload is the backend's activity shape. IDs arrive as JSON numbers.
type activityPayload struct {
	ID         json.Number `json:"id"`
	EmployeeID json.Number `json:"employee_id"`
	Date       string      `json:"date"`
	Type       string      `json:"type"`
	Hours      float64     `json:"hours"`
	Comment    string      `json:"comment"`
}

// calendarEnvelope mirrors GET /calendar: activities come back keyed by an
// opaque bucket key inside per-employee objects.
type calendarEnvelope struct {
	Success  bool `json:"success"`
	Calendar struct {
		Employees []struct {
			Activities map[string]activityPayload `json:"activities"`
		} `json:"employees"`
		Holidays []holidayPayload `json:"holidays"`
	} `json:"calendar"`
}

type holidayPayload struct {
	Date    string `json:"date"`
	Country string `json:"country"`
	Name    string `json:"name"`
}

type holidaysEnvelope struct {
	Success  bool             `json:"success"`
	Holidays []holidayPayload `json:"holidays"`
}

type activityEnvelope struct {
	Success  bool            `json:"success"`
	Activity activityPayload `json:"activity"`
}

// FetchActivities implements calendar.Gateway. A 404 means the employee has
// no calendar bucket for the period and maps to calendar.ErrNoCalendarData.
func (c *Client) FetchActivities(ctx context.Context, employeeID string, year, month int) ([]calendar.Activity, error) {
	query := url.Values{}
	query.Set("employee_id", employeeID)
	query.Set("year", strconv.Itoa(year))
	query.Set("month", strconv.Itoa(month))

	var envelope calendarEnvelope
	err := c.do(ctx, http.MethodGet, "/calendar", query, nil, &envelope)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return nil, calendar.ErrNoCalendarData
	}
	if err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, &calendar.TransientError{Op: "GET /calendar", Err: errors.New("backend reported failure")}
	}

	var activities []calendar.Activity
	for _, emp := range envelope.Calendar.Employees {
		for _, payload := range emp.Activities {
			activity, err := payload.toActivity()
			if err != nil {
				return nil, err
			}
			activities = append(activities, activity)
		}
	}

	// The bucket keys are a JSON object, so iteration order is random.
	// Re-sort by date then ID to keep decoded output stable.
	sort.Slice(activities, func(i, j int) bool {
		if !activities[i].Date.Equal(activities[j].Date) {
			return activities[i].Date.Before(activities[j].Date)
		}
		return activities[i].ID < activities[j].ID
	})

	return activities, nil
}

// FetchHolidays implements calendar.Gateway. The response covers every
// country; filtering by relevant country happens in the aggregator.
func (c *Client) FetchHolidays(ctx context.Context, year int) ([]calendar.Holiday, error) {
	query := url.Values{}
	query.Set("year", strconv.Itoa(year))

	var envelope holidaysEnvelope
	if err := c.do(ctx, http.MethodGet, "/holidays", query, nil, &envelope); err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, &calendar.TransientError{Op: "GET /holidays", Err: errors.New("backend reported failure")}
	}

	holidays := make([]calendar.Holiday, 0, len(envelope.Holidays))
	for _, payload := range envelope.Holidays {
		date, err := parseDate(payload.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing holiday date %q: %w", payload.Date, err)
		}
		holidays = append(holidays, calendar.Holiday{
			Date:    date,
			Country: payload.Country,
			Name:    payload.Name,
		})
	}
	return holidays, nil
}

// CreateActivity implements calendar.Gateway. Every failure surfaces as a
// *calendar.MutationError so callers never see transport detail.
func (c *Client) CreateActivity(ctx context.Context, req calendar.CreateActivityRequest) (calendar.Activity, error) {
	var envelope activityEnvelope
	if err := c.do(ctx, http.MethodPost, "/calendar/activities", nil, req, &envelope); err != nil {
		return calendar.Activity{}, asMutationError(err)
	}
	if !envelope.Success {
		return calendar.Activity{}, &calendar.MutationError{
			StatusCode: http.StatusBadGateway,
			Message:    "backend reported failure",
		}
	}

	activity, err := envelope.Activity.toActivity()
	if err != nil {
		return calendar.Activity{}, asMutationError(err)
	}
	return activity, nil
}

// DeleteActivity implements calendar.Gateway.
func (c *Client) DeleteActivity(ctx context.Context, activityID string) error {
	var envelope errorEnvelope
	if err := c.do(ctx, http.MethodDelete, "/calendar/activities/"+url.PathEscape(activityID), nil, nil, &envelope); err != nil {
		return asMutationError(err)
	}
	if !envelope.Success {
		return &calendar.MutationError{
			StatusCode: http.StatusBadGateway,
			Message:    "backend reported failure",
		}
	}
	return nil
}

func (p activityPayload) toActivity() (calendar.Activity, error) {
	date, err := parseDate(p.Date)
	if err != nil {
		return calendar.Activity{}, fmt.Errorf("parsing activity date %q: %w", p.Date, err)
	}
	return calendar.Activity{
		ID:         p.ID.String(),
		EmployeeID: p.EmployeeID.String(),
		Date:       date,
		Type:       calendar.ActivityType(p.Type),
		Hours:      p.Hours,
		Comment:    p.Comment,
	}, nil
}

// asMutationError folds API and transport failures into the one error kind
// the mutation path surfaces.
func asMutationError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return &calendar.MutationError{
			StatusCode: apiErr.StatusCode,
			Message:    apiErr.Message,
		}
	}
	return &calendar.MutationError{
		StatusCode: http.StatusBadGateway,
		Message:    err.Error(),
	}
}
