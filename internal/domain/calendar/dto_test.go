package calendar

import (
	"testing"

	"github.com/MrChorusman/team-calendar-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateActivityRequestValidate(t *testing.T) {
	valid := CreateActivityRequest{
		EmployeeID: "12",
		Date:       "2024-03-15",
		Type:       "V",
		Hours:      8,
	}
	assert.NoError(t, valid.Validate())
}

func TestCreateActivityRequestValidateErrors(t *testing.T) {
	req := CreateActivityRequest{
		EmployeeID: "",
		Date:       "15/03/2024",
		Type:       "PARTY",
		Hours:      30,
	}
	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := errs.ToMap()
	assert.Contains(t, fields, "employee_id")
	assert.Contains(t, fields, "date")
	assert.Contains(t, fields, "activity_type")
	assert.Contains(t, fields, "hours")
}

func TestCreateActivityRequestValidateMissingDate(t *testing.T) {
	req := CreateActivityRequest{EmployeeID: "1", Type: "G"}
	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "date is required", errs.ToMap()["date"])
}
