package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2024-03-01")
	require.True(t, ok)
	assert.Equal(t, time.March, date.Month())

	_, ok = IsValidDate("01-03-2024")
	assert.False(t, ok)

	_, ok = IsValidDate("")
	assert.False(t, ok)
}

func TestDayBounds(t *testing.T) {
	start, end := DayBounds("2024-03-01")

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC), end)
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "date must be in YYYY-MM-DD format"},
		{Field: "limit", Message: "limit must be between 1 and 100"},
	}

	assert.Contains(t, errs.Error(), "date:")
	assert.Equal(t, "limit must be between 1 and 100", errs.ToMap()["limit"])
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty("x"))
}
