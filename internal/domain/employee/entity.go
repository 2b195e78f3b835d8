package employee

import "context"

// Employee as supplied by the directory collaborator. Immutable for the
// duration of one aggregation pass.
type Employee struct {
	ID       string
	FullName string
	Country  string // ISO-2, ISO-3 or display name; normalized at use sites
	TeamIDs  []string
}

// Directory is the external employee-directory contract.
type Directory interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
}

// FilterByIDs keeps employees whose ID is in ids, preserving list order.
func FilterByIDs(list []Employee, ids []string) []Employee {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var filtered []Employee
	for _, e := range list {
		if wanted[e.ID] {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// FilterByTeam keeps employees belonging to teamID, preserving list order.
func FilterByTeam(list []Employee, teamID string) []Employee {
	var filtered []Employee
	for _, e := range list {
		for _, t := range e.TeamIDs {
			if t == teamID {
				filtered = append(filtered, e)
				break
			}
		}
	}
	return filtered
}
