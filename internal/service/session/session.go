package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/MrChorusman/team-calendar-go/internal/domain/calendar"
	"github.com/MrChorusman/team-calendar-go/internal/domain/employee"
	"github.com/MrChorusman/team-calendar-go/internal/pkg/sse"
	"github.com/MrChorusman/team-calendar-go/internal/service/aggregator"
)

var ErrNoActiveView = errors.New("no active calendar view")

// View is the (employee set, scope) pair a snapshot is derived from.
type View struct {
	Employees []employee.Employee
	Scope     calendar.ViewScope
}

// Session owns the authoritative view state for one console session: the
// current (employee set, scope), the last published snapshot, and the
// generation counter that enforces last-request-wins. A pass publishes only
// if its generation is still current when it finishes, so a slow stale
// aggregation can never overwrite a newer one.
type Session struct {
	aggregator *aggregator.Service
	hub        *sse.Hub
	topic      string

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	view       View
	hasView    bool
	snapshot   *calendar.Snapshot
}

func New(agg *aggregator.Service, hub *sse.Hub, topic string) *Session {
	return &Session{
		aggregator: agg,
		hub:        hub,
		topic:      topic,
	}
}

func (s *Session) Topic() string {
	return s.topic
}

// Subscribe attaches a consumer to this session's event stream.
func (s *Session) Subscribe() (chan sse.Event, func()) {
	return s.hub.Subscribe(s.topic)
}

// SetView makes (employees, scope) the authoritative view and runs one
// aggregation pass for it. Any in-flight pass is cancelled and its result
// discarded. Returns the fresh snapshot, or ErrStaleAggregation when this
// pass was itself superseded before it finished.
func (s *Session) SetView(ctx context.Context, employees []employee.Employee, scope calendar.ViewScope) (*calendar.Snapshot, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	generation, aggCtx := s.begin(ctx, View{Employees: employees, Scope: scope})
	snapshot, err := s.aggregator.Aggregate(aggCtx, employees, scope)
	return s.publish(generation, snapshot, err)
}

// Refresh re-runs aggregation for the current view. Used after successful
// mutations so the reload path is exactly the one a filter change takes.
func (s *Session) Refresh(ctx context.Context) (*calendar.Snapshot, error) {
	s.mu.Lock()
	if !s.hasView {
		s.mu.Unlock()
		return nil, ErrNoActiveView
	}
	view := s.view
	s.mu.Unlock()

	generation, aggCtx := s.begin(ctx, view)
	snapshot, err := s.aggregator.Aggregate(aggCtx, view.Employees, view.Scope)
	return s.publish(generation, snapshot, err)
}

// Snapshot returns the last published snapshot, or nil before the first
// successful pass. Published snapshots are immutable.
func (s *Session) Snapshot() *calendar.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// CurrentView returns the authoritative view, if one has been set.
func (s *Session) CurrentView() (View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view, s.hasView
}

// begin installs view as authoritative, bumps the generation and cancels the
// in-flight pass, returning this pass's generation and context.
func (s *Session) begin(ctx context.Context, view View) (uint64, context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	if s.cancel != nil {
		s.cancel()
	}
	aggCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.view = view
	s.hasView = true
	return s.generation, aggCtx
}

// publish records the pass outcome if its generation is still current.
// Generation check and snapshot swap happen under one lock, so consumers see
// either the previous complete snapshot or the new one, never a mix.
func (s *Session) publish(generation uint64, snapshot *calendar.Snapshot, err error) (*calendar.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		slog.Debug("discarding stale aggregation", "generation", generation, "current", s.generation)
		return nil, calendar.ErrStaleAggregation
	}

	if err != nil {
		s.hub.Publish(s.topic, sse.Event{
			Event: "aggregation_failed",
			Data:  map[string]string{"message": err.Error()},
		})
		return nil, err
	}

	s.snapshot = snapshot
	s.hub.Publish(s.topic, sse.Event{
		Event: "snapshot",
		Data:  snapshot,
	})
	return snapshot, nil
}
