package mutation

import (
	"context"
	"log/slog"

	"github.com/MrChorusman/team-calendar-go/internal/domain/calendar"
	"github.com/MrChorusman/team-calendar-go/internal/pkg/sse"
	"github.com/MrChorusman/team-calendar-go/internal/service/session"
)

// Coordinator executes activity mutations and always ends a successful one
// with a full re-aggregation of the active view. The published snapshot is
// never patched locally: a patch would have to replicate every merge and
// filtering rule of the aggregator and would drift from server truth.
type Coordinator struct {
	gateway calendar.Gateway
	session *session.Session
	hub     *sse.Hub
}

func NewCoordinator(gateway calendar.Gateway, sess *session.Session, hub *sse.Hub) *Coordinator {
	return &Coordinator{
		gateway: gateway,
		session: sess,
		hub:     hub,
	}
}

// Create validates and creates an activity, then reloads the active view.
// On gateway failure the previous snapshot stays authoritative and no
// re-aggregation runs.
func (c *Coordinator) Create(ctx context.Context, req calendar.CreateActivityRequest) (*calendar.Snapshot, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := c.gateway.CreateActivity(ctx, req)
	if err != nil {
		c.publishFailure(err)
		return nil, err
	}

	slog.Info("activity created", "activity_id", created.ID, "employee_id", req.EmployeeID, "date", req.Date)
	return c.session.Refresh(ctx)
}

// Delete removes an activity, then reloads the active view.
func (c *Coordinator) Delete(ctx context.Context, activityID string) (*calendar.Snapshot, error) {
	if activityID == "" {
		return nil, calendar.ErrInvalidRequestData
	}

	if err := c.gateway.DeleteActivity(ctx, activityID); err != nil {
		c.publishFailure(err)
		return nil, err
	}

	slog.Info("activity deleted", "activity_id", activityID)
	return c.session.Refresh(ctx)
}

func (c *Coordinator) publishFailure(err error) {
	c.hub.Publish(c.session.Topic(), sse.Event{
		Event: "mutation_failed",
		Data:  map[string]string{"message": err.Error()},
	})
}
