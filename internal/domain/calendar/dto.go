package calendar

import "github.com/MrChorusman/team-calendar-go/internal/pkg/validator"

type CreateActivityRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"` // YYYY-MM-DD
	Type       string  `json:"activity_type"`
	Hours      float64 `json:"hours,omitempty"`
	Comment    *string `json:"comment,omitempty"`
}

func (r *CreateActivityRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must use the YYYY-MM-DD format",
		})
	}

	if !validator.IsInSlice(r.Type, ActivityTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "activity_type",
			Message: "activity_type must be one of V, A, HLD, G, F, O",
		})
	}

	if r.Hours < 0 || r.Hours > 24 {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours must be between 0 and 24",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
