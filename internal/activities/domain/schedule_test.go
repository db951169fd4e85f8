package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"00:00", false},
		{"09:30", false},
		{"23:59", false},
		{"24:00", true},
		{"12:60", true},
		{"9:30", true},
		{"09:3", true},
		{"0930", true},
		{"ab:cd", true},
		{"", true},
		{"09:30:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseClock(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, c.String())
		})
	}
}

func TestParseOptionalClock(t *testing.T) {
	c, err := ParseOptionalClock("")
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = ParseOptionalClock("07:15")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, Clock("07:15"), *c)

	_, err = ParseOptionalClock("7:15")
	assert.Error(t, err)
}

func TestClockOf(t *testing.T) {
	ts := time.Date(2024, 3, 4, 7, 5, 59, 0, time.UTC)
	assert.Equal(t, Clock("07:05"), ClockOf(ts))
}

func TestWeekdayOf(t *testing.T) {
	// 2024-03-03 is a Sunday.
	base := time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC)
	expected := []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
	for i, want := range expected {
		assert.Equal(t, want, WeekdayOf(base.AddDate(0, 0, i)))
	}
}

func TestWeekdayOf_UsesLocation(t *testing.T) {
	// Monday 23:30 UTC is already Tuesday in UTC+2.
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2024, 3, 4, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, Monday, WeekdayOf(ts))
	assert.Equal(t, Tuesday, WeekdayOf(ts.In(loc)))
}

func TestParseWeekdays(t *testing.T) {
	days, err := ParseWeekdays(nil)
	require.NoError(t, err)
	assert.Nil(t, days)

	days, err = ParseWeekdays([]string{"Mon", "Fri"})
	require.NoError(t, err)
	assert.Equal(t, []Weekday{Monday, Friday}, days)

	_, err = ParseWeekdays([]string{"Mon", "monday"})
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}
