// Package domain holds the suggestion engine. It is pure: callers pass the
// current instant and already-loaded data, and nothing here reads a clock or
// performs I/O.
package domain

import (
	"time"

	activities "github.com/manumorante/whats-next/internal/activities/domain"
)

// Moment is a point in the week: a day code and an HH:MM wall-clock time.
type Moment struct {
	Day  activities.Weekday
	Time activities.Clock
}

// MomentOf derives the moment of t in t's location.
func MomentOf(t time.Time) Moment {
	return Moment{
		Day:  activities.WeekdayOf(t),
		Time: activities.ClockOf(t),
	}
}

// Window is a recurring weekly window. A nil Day matches every day and empty
// bounds match all day.
type Window struct {
	Day   *activities.Weekday
	Start activities.Clock
	End   activities.Clock
}

// Matches reports whether m falls inside the window. Both bounds are
// inclusive. When End is before Start the window crosses midnight.
// Malformed bounds never match.
func (w Window) Matches(m Moment) bool {
	if w.Day != nil && *w.Day != m.Day {
		return false
	}
	if w.Start == "" && w.End == "" {
		return true
	}
	if !w.Start.IsValid() || !w.End.IsValid() || !m.Time.IsValid() {
		return false
	}
	if w.End < w.Start {
		return m.Time >= w.Start || m.Time <= w.End
	}
	return m.Time >= w.Start && m.Time <= w.End
}

// SlotWindow returns the window of an activity time slot.
func SlotWindow(s activities.TimeSlot) Window {
	return Window{Day: s.DayOfWeek, Start: s.TimeStart, End: s.TimeEnd}
}
