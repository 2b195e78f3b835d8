package calendar

import "fmt"

// Period is one (year, month) unit of fetch granularity, month 1-indexed.
// Ordering is total: year first, then month.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (p Period) Before(q Period) bool {
	if p.Year != q.Year {
		return p.Year < q.Year
	}
	return p.Month < q.Month
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

type ViewMode string

const (
	ViewMonthly ViewMode = "monthly"
	ViewAnnual  ViewMode = "annual"
)

// ViewScope is the requested time window for a calendar view: a single month
// or an entire year.
type ViewScope struct {
	Mode  ViewMode `json:"mode"`
	Year  int      `json:"year"`
	Month int      `json:"month,omitempty"` // only meaningful for ViewMonthly
}

func MonthlyScope(year, month int) ViewScope {
	return ViewScope{Mode: ViewMonthly, Year: year, Month: month}
}

func AnnualScope(year int) ViewScope {
	return ViewScope{Mode: ViewAnnual, Year: year}
}

func (s ViewScope) Validate() error {
	switch s.Mode {
	case ViewMonthly:
		if s.Month < 1 || s.Month > 12 {
			return ErrInvalidScope
		}
	case ViewAnnual:
	default:
		return ErrInvalidScope
	}
	if s.Year < 1 {
		return ErrInvalidScope
	}
	return nil
}

// Periods expands the scope into the ordered set of periods to fetch:
// one period for a monthly view, the twelve months of the year ascending for
// an annual view. The aggregator derives both its fetch plan and its merge
// order from this ordering, so it must stay deterministic.
func (s ViewScope) Periods() []Period {
	switch s.Mode {
	case ViewAnnual:
		periods := make([]Period, 0, 12)
		for month := 1; month <= 12; month++ {
			periods = append(periods, Period{Year: s.Year, Month: month})
		}
		return periods
	default:
		return []Period{{Year: s.Year, Month: s.Month}}
	}
}

// Years returns the distinct years covered by the scope's periods, in
// expansion order. Holidays are fetched once per entry.
func (s ViewScope) Years() []int {
	var years []int
	seen := make(map[int]bool)
	for _, p := range s.Periods() {
		if !seen[p.Year] {
			seen[p.Year] = true
			years = append(years, p.Year)
		}
	}
	return years
}
