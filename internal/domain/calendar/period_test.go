package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyScopePeriods(t *testing.T) {
	periods := MonthlyScope(2024, 3).Periods()
	require.Len(t, periods, 1)
	assert.Equal(t, Period{Year: 2024, Month: 3}, periods[0])
}

func TestAnnualScopePeriods(t *testing.T) {
	periods := AnnualScope(2024).Periods()
	require.Len(t, periods, 12)
	for i, p := range periods {
		assert.Equal(t, 2024, p.Year)
		assert.Equal(t, i+1, p.Month)
	}
	// ascending order
	for i := 1; i < len(periods); i++ {
		assert.True(t, periods[i-1].Before(periods[i]))
	}
}

func TestScopeYears(t *testing.T) {
	assert.Equal(t, []int{2024}, MonthlyScope(2024, 7).Years())
	assert.Equal(t, []int{2025}, AnnualScope(2025).Years())
}

func TestScopeValidate(t *testing.T) {
	assert.NoError(t, MonthlyScope(2024, 1).Validate())
	assert.NoError(t, MonthlyScope(2024, 12).Validate())
	assert.NoError(t, AnnualScope(2024).Validate())

	assert.ErrorIs(t, MonthlyScope(2024, 0).Validate(), ErrInvalidScope)
	assert.ErrorIs(t, MonthlyScope(2024, 13).Validate(), ErrInvalidScope)
	assert.ErrorIs(t, MonthlyScope(0, 5).Validate(), ErrInvalidScope)
	assert.ErrorIs(t, ViewScope{Mode: "weekly", Year: 2024}.Validate(), ErrInvalidScope)
}

func TestPeriodOrdering(t *testing.T) {
	assert.True(t, Period{2023, 12}.Before(Period{2024, 1}))
	assert.True(t, Period{2024, 1}.Before(Period{2024, 2}))
	assert.False(t, Period{2024, 2}.Before(Period{2024, 2}))
	assert.False(t, Period{2024, 2}.Before(Period{2024, 1}))
}

func TestPeriodString(t *testing.T) {
	assert.Equal(t, "2024-03", Period{2024, 3}.String())
}
