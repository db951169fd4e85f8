package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	activities "github.com/manumorante/whats-next/internal/activities/domain"
)

func day(d activities.Weekday) *activities.Weekday { return &d }

func TestWindow_Matches(t *testing.T) {
	tests := []struct {
		name   string
		window Window
		moment Moment
		want   bool
	}{
		{"always active", Window{}, Moment{activities.Monday, "03:00"}, true},
		{"day only matches", Window{Day: day(activities.Monday)}, Moment{activities.Monday, "03:00"}, true},
		{"day only other day", Window{Day: day(activities.Monday)}, Moment{activities.Tuesday, "03:00"}, false},
		{"inside", Window{Start: "08:00", End: "10:00"}, Moment{activities.Monday, "09:00"}, true},
		{"start inclusive", Window{Start: "08:00", End: "10:00"}, Moment{activities.Monday, "08:00"}, true},
		{"end inclusive", Window{Start: "08:00", End: "10:00"}, Moment{activities.Monday, "10:00"}, true},
		{"before", Window{Start: "08:00", End: "10:00"}, Moment{activities.Monday, "07:59"}, false},
		{"after", Window{Start: "08:00", End: "10:00"}, Moment{activities.Monday, "10:01"}, false},
		{"wrong day", Window{Day: day(activities.Monday), Start: "08:00", End: "10:00"}, Moment{activities.Sunday, "09:00"}, false},
		{"midnight start", Window{Start: "22:00", End: "02:00"}, Moment{activities.Monday, "22:00"}, true},
		{"midnight end", Window{Start: "22:00", End: "02:00"}, Moment{activities.Monday, "02:00"}, true},
		{"just after midnight", Window{Start: "22:00", End: "02:00"}, Moment{activities.Monday, "00:01"}, true},
		{"midnight late", Window{Start: "22:00", End: "02:00"}, Moment{activities.Monday, "23:59"}, true},
		{"midnight outside", Window{Start: "22:00", End: "02:00"}, Moment{activities.Monday, "12:00"}, false},
		{"malformed start", Window{Start: "8:00", End: "10:00"}, Moment{activities.Monday, "09:00"}, false},
		{"malformed end", Window{Start: "08:00", End: "25:00"}, Moment{activities.Monday, "09:00"}, false},
		{"one bound missing", Window{Start: "08:00"}, Moment{activities.Monday, "09:00"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.window.Matches(tt.moment))
		})
	}
}

func TestWindow_MidnightBoundaries(t *testing.T) {
	windows := []Window{
		{Start: "23:00", End: "01:00"},
		{Start: "18:30", End: "06:15"},
		{Start: "00:01", End: "00:00"},
		{Start: "12:00", End: "11:59"},
	}
	for _, w := range windows {
		t.Run(string(w.Start)+"-"+string(w.End), func(t *testing.T) {
			assert.True(t, w.Matches(Moment{activities.Monday, w.Start}))
			assert.True(t, w.Matches(Moment{activities.Monday, w.End}))
			assert.True(t, w.Matches(Moment{activities.Monday, "00:00"}))
		})
	}
}

func TestMomentOf(t *testing.T) {
	// 2024-03-04 is a Monday.
	m := MomentOf(time.Date(2024, 3, 4, 9, 5, 0, 0, time.UTC))
	assert.Equal(t, Moment{Day: activities.Monday, Time: "09:05"}, m)
}
