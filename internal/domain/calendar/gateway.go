package calendar

import "context"

// Gateway is the remote calendar backend contract this service consumes.
// FetchActivities fails with ErrNoCalendarData when the employee has no
// bucket for the period and with *TransientError on network/server failure.
// FetchHolidays returns every country's holidays for the year; filtering by
// relevant country is the aggregator's job. Mutation failures surface as
// *MutationError.
type Gateway interface {
	FetchActivities(ctx context.Context, employeeID string, year, month int) ([]Activity, error)
	FetchHolidays(ctx context.Context, year int) ([]Holiday, error)
	CreateActivity(ctx context.Context, req CreateActivityRequest) (Activity, error)
	DeleteActivity(ctx context.Context, activityID string) error
}
