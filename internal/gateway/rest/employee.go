package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrChorusman/team-calendar-go/internal/domain/employee"
)

type employeePayload struct {
	ID       json.Number   `json:"id"`
	FullName string        `json:"full_name"`
	Country  string        `json:"country"`
	TeamIDs  []json.Number `json:"team_ids"`
}

type employeesEnvelope struct {
	Success   bool              `json:"success"`
	Employees []employeePayload `json:"employees"`
}

// ListEmployees implements employee.Directory.
func (c *Client) ListEmployees(ctx context.Context) ([]employee.Employee, error) {
	var envelope employeesEnvelope
	if err := c.do(ctx, http.MethodGet, "/employees", nil, nil, &envelope); err != nil {
		return nil, errors.Join(employee.ErrDirectoryFailed, err)
	}
	if !envelope.Success {
		return nil, employee.ErrDirectoryFailed
	}

	employees := make([]employee.Employee, 0, len(envelope.Employees))
	for _, payload := range envelope.Employees {
		teams := make([]string, 0, len(payload.TeamIDs))
		for _, id := range payload.TeamIDs {
			teams = append(teams, id.String())
		}
		employees = append(employees, employee.Employee{
			ID:       payload.ID.String(),
			FullName: payload.FullName,
			Country:  payload.Country,
			TeamIDs:  teams,
		})
	}
	return employees, nil
}
