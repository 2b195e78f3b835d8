package aggregator

import (
	"context"
	"errors"
	"sort"

	"github.com/MrChorusman/team-calendar-go/internal/domain/calendar"
	"github.com/MrChorusman/team-calendar-go/internal/domain/employee"
	"github.com/MrChorusman/team-calendar-go/internal/pkg/country"
	"golang.org/x/sync/errgroup"
)

// Service computes calendar snapshots by fanning out one gateway call per
// (employee, period) pair plus one holiday call per distinct year, bounded
// by a concurrency cap. A pass either produces a complete snapshot or fails;
// partial data never reaches the consumer, because the view cannot tell
// "employee has no activity" apart from "fetch failed silently".
type Service struct {
	gateway     calendar.Gateway
	concurrency int
}

func NewService(gateway calendar.Gateway, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		gateway:     gateway,
		concurrency: concurrency,
	}
}

// Aggregate builds the snapshot for (employees, scope).
//
// The merge order is deterministic regardless of fetch completion order:
// results land in preallocated slots indexed by (employee, period), employees
// sorted by ID, periods in expansion order. Holiday cost is O(distinct years),
// never O(employees x periods).
func (s *Service) Aggregate(ctx context.Context, employees []employee.Employee, scope calendar.ViewScope) (*calendar.Snapshot, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	snapshot := &calendar.Snapshot{
		Scope:      scope,
		Activities: []calendar.Activity{},
		Holidays:   []calendar.Holiday{},
	}
	if len(employees) == 0 {
		return snapshot, nil
	}

	sorted := make([]employee.Employee, len(employees))
	copy(sorted, employees)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	countries := make(map[string]bool)
	for _, emp := range sorted {
		countries[country.Normalize(emp.Country)] = true
	}

	periods := scope.Periods()
	years := scope.Years()

	activitySlots := make([][]calendar.Activity, len(sorted)*len(periods))
	holidaySlots := make([][]calendar.Holiday, len(years))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	// Holidays: exactly one fetch per distinct year, independent of the
	// employee iteration. Filtering to relevant countries happens after the
	// join so a holiday fetch never waits on activity data.
	for yi, year := range years {
		yi, year := yi, year
		g.Go(func() error {
			holidays, err := s.gateway.FetchHolidays(gCtx, year)
			if err != nil {
				return err
			}
			holidaySlots[yi] = holidays
			return nil
		})
	}

	for ei, emp := range sorted {
		emp := emp
		for pi, period := range periods {
			period := period
			slot := ei*len(periods) + pi
			g.Go(func() error {
				activities, err := s.gateway.FetchActivities(gCtx, emp.ID, period.Year, period.Month)
				if errors.Is(err, calendar.ErrNoCalendarData) {
					return nil
				}
				if err != nil {
					return err
				}
				// The gateway response may omit the owner; tag before merging.
				for i := range activities {
					activities[i].EmployeeID = emp.ID
				}
				activitySlots[slot] = activities
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Join(calendar.ErrAggregationFailed, err)
	}

	for _, activities := range activitySlots {
		snapshot.Activities = append(snapshot.Activities, activities...)
	}
	for _, holidays := range holidaySlots {
		for _, holiday := range holidays {
			if countries[country.Normalize(holiday.Country)] {
				snapshot.Holidays = append(snapshot.Holidays, holiday)
			}
		}
	}

	return snapshot, nil
}
