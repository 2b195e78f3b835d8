package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MrChorusman/team-calendar-go/internal/domain/calendar"
	"github.com/MrChorusman/team-calendar-go/internal/domain/employee"
	"github.com/MrChorusman/team-calendar-go/internal/pkg/sse"
	"github.com/MrChorusman/team-calendar-go/internal/service/aggregator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gateGateway lets a test hold selected activity fetches open to interleave
// two aggregation passes deterministically.
type gateGateway struct {
	mu sync.Mutex

	blockYear int           // activity fetches for this year park on release
	started   chan struct{} // closed once a blocked fetch has started
	release   chan struct{}

	startOnce sync.Once
	failing   bool
}

func newGateGateway() *gateGateway {
	return &gateGateway{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (g *gateGateway) FetchActivities(ctx context.Context, employeeID string, year, month int) ([]calendar.Activity, error) {
	g.mu.Lock()
	failing := g.failing
	blocked := g.blockYear == year
	g.mu.Unlock()

	if failing {
		return nil, &calendar.TransientError{Op: "GET /calendar", Err: errors.New("boom")}
	}
	if blocked {
		g.startOnce.Do(func() { close(g.started) })
		select {
		case <-g.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return []calendar.Activity{{
		ID:   employeeID + "-" + calendar.Period{Year: year, Month: month}.String(),
		Date: time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
		Type: calendar.ActivityGuard,
	}}, nil
}

func (g *gateGateway) FetchHolidays(ctx context.Context, year int) ([]calendar.Holiday, error) {
	return nil, nil
}

func (g *gateGateway) CreateActivity(ctx context.Context, req calendar.CreateActivityRequest) (calendar.Activity, error) {
	return calendar.Activity{}, errors.New("not used in session tests")
}

func (g *gateGateway) DeleteActivity(ctx context.Context, activityID string) error {
	return errors.New("not used in session tests")
}

func newTestSession(gw calendar.Gateway) (*Session, *sse.Hub) {
	hub := sse.NewHub()
	return New(aggregator.NewService(gw, 2), hub, "calendar"), hub
}

func TestSetView_PublishesSnapshot(t *testing.T) {
	sess, hub := newTestSession(newGateGateway())
	events, cleanup := hub.Subscribe("calendar")
	defer cleanup()

	employees := []employee.Employee{{ID: "1", Country: "ES"}}
	snapshot, err := sess.SetView(context.Background(), employees, calendar.MonthlyScope(2024, 3))
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Len(t, snapshot.Activities, 1)

	assert.Same(t, snapshot, sess.Snapshot())

	select {
	case event := <-events:
		assert.Equal(t, "snapshot", event.Event)
		assert.Same(t, snapshot, event.Data)
	default:
		t.Fatal("expected a snapshot event on the hub")
	}
}

// A pass superseded mid-flight must be discarded even when it finishes last:
// the consumer only ever observes the newest view's snapshot.
func TestSetView_StaleResultDiscarded(t *testing.T) {
	gw := newGateGateway()
	gw.blockYear = 2023
	sess, _ := newTestSession(gw)

	employees := []employee.Employee{{ID: "1", Country: "ES"}}

	staleResult := make(chan error, 1)
	go func() {
		_, err := sess.SetView(context.Background(), employees, calendar.MonthlyScope(2023, 1))
		staleResult <- err
	}()

	// wait until the first pass is parked inside the gateway
	select {
	case <-gw.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first pass never reached the gateway")
	}

	fresh, err := sess.SetView(context.Background(), employees, calendar.MonthlyScope(2024, 6))
	require.NoError(t, err)
	require.NotNil(t, fresh)

	close(gw.release)

	select {
	case err := <-staleResult:
		assert.ErrorIs(t, err, calendar.ErrStaleAggregation)
	case <-time.After(2 * time.Second):
		t.Fatal("stale pass never returned")
	}

	require.Same(t, fresh, sess.Snapshot(), "only the newest view's snapshot may be published")
	assert.Equal(t, calendar.MonthlyScope(2024, 6), sess.Snapshot().Scope)
}

func TestSetView_FailureRetainsPreviousSnapshot(t *testing.T) {
	gw := newGateGateway()
	sess, _ := newTestSession(gw)
	employees := []employee.Employee{{ID: "1", Country: "ES"}}

	previous, err := sess.SetView(context.Background(), employees, calendar.MonthlyScope(2024, 1))
	require.NoError(t, err)

	gw.mu.Lock()
	gw.failing = true
	gw.mu.Unlock()

	_, err = sess.SetView(context.Background(), employees, calendar.MonthlyScope(2024, 2))
	require.Error(t, err)
	assert.ErrorIs(t, err, calendar.ErrAggregationFailed)

	assert.Same(t, previous, sess.Snapshot(), "failed pass must not replace the last-known-good snapshot")
}

func TestSetView_FailurePublishesErrorEvent(t *testing.T) {
	gw := newGateGateway()
	gw.failing = true
	sess, hub := newTestSession(gw)
	events, cleanup := hub.Subscribe("calendar")
	defer cleanup()

	_, err := sess.SetView(context.Background(), []employee.Employee{{ID: "1", Country: "ES"}}, calendar.MonthlyScope(2024, 1))
	require.Error(t, err)

	select {
	case event := <-events:
		assert.Equal(t, "aggregation_failed", event.Event)
	default:
		t.Fatal("expected an aggregation_failed event on the hub")
	}
}

func TestRefresh_RequiresActiveView(t *testing.T) {
	sess, _ := newTestSession(newGateGateway())
	_, err := sess.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNoActiveView)
}

func TestRefresh_ReusesCurrentView(t *testing.T) {
	sess, _ := newTestSession(newGateGateway())
	employees := []employee.Employee{{ID: "1", Country: "ES"}}

	_, err := sess.SetView(context.Background(), employees, calendar.MonthlyScope(2024, 4))
	require.NoError(t, err)

	refreshed, err := sess.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, calendar.MonthlyScope(2024, 4), refreshed.Scope)

	view, ok := sess.CurrentView()
	require.True(t, ok)
	assert.Equal(t, employees, view.Employees)
}

func TestSetView_InvalidScope(t *testing.T) {
	sess, _ := newTestSession(newGateGateway())
	_, err := sess.SetView(context.Background(), nil, calendar.MonthlyScope(2024, 0))
	assert.ErrorIs(t, err, calendar.ErrInvalidScope)
}
