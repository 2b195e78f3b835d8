package calendar

import "time"

// Activity is one calendar entry for one employee on one date. The remote
// backend buckets activities by (employee, year, month) even though each
// activity carries a full date.
type Activity struct {
	ID         string       `json:"id"`
	EmployeeID string       `json:"employee_id"`
	Date       time.Time    `json:"date"`
	Type       ActivityType `json:"type"`
	Hours      float64      `json:"hours,omitempty"`
	Comment    string       `json:"comment,omitempty"`
}

type ActivityType string

const (
	ActivityVacation ActivityType = "V"   // vacation day
	ActivityAbsence  ActivityType = "A"   // unplanned absence
	ActivityHoliday  ActivityType = "HLD" // local holiday taken as time off
	ActivityGuard    ActivityType = "G"   // on-call guard duty
	ActivityTraining ActivityType = "F"   // training / formation
	ActivityOther    ActivityType = "O"
)

var ActivityTypeValues = []string{
	string(ActivityVacation),
	string(ActivityAbsence),
	string(ActivityHoliday),
	string(ActivityGuard),
	string(ActivityTraining),
	string(ActivityOther),
}

// Holiday is country-scoped, not employee-scoped: the same record applies to
// every employee whose normalized country matches Country.
type Holiday struct {
	Date    time.Time `json:"date"`
	Country string    `json:"country"`
	Name    string    `json:"name"`
}

// Snapshot is the complete result of one aggregation pass over
// (employee set, view scope). It is never mutated after publication; a new
// view or a successful mutation replaces it wholesale.
type Snapshot struct {
	Scope      ViewScope  `json:"scope"`
	Activities []Activity `json:"activities"`
	Holidays   []Holiday  `json:"holidays"`
}
