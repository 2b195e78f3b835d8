package calendar

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCalendarData means the employee has no calendar bucket for the
	// requested period. The aggregator recovers it as an empty result.
	ErrNoCalendarData = errors.New("no calendar data for employee in period")

	// ErrAggregationFailed marks a pass that was aborted before producing a
	// snapshot. The previously published snapshot stays authoritative.
	ErrAggregationFailed = errors.New("calendar aggregation failed")

	// ErrStaleAggregation marks a pass that completed after a newer view
	// superseded it. Its result is discarded, never published.
	ErrStaleAggregation = errors.New("aggregation superseded by a newer view")

	ErrInvalidScope = errors.New("invalid view scope")

	// Request Data Errors
	ErrInvalidRequestData = errors.New("invalid request data")
)

// TransientError wraps a network or server failure on a gateway fetch.
// Retrying is caller policy; the gateway never retries on its own.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient gateway failure on %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// MutationError carries the server-provided failure for a create or delete.
// It never triggers a re-aggregation.
type MutationError struct {
	StatusCode int
	Message    string
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("mutation rejected [%d]: %s", e.StatusCode, e.Message)
}
