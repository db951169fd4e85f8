package domain

import (
	"errors"
	"strings"

	activities "github.com/manumorante/whats-next/internal/activities/domain"
)

var ErrInvalidTimeOfDay = errors.New("invalid time of day, use morning, afternoon, evening or night")

// TimeOfDay is a coarse part of the day.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// ParseTimeOfDay validates a period name.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t := TimeOfDay(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := t.Range(); !ok {
		return "", ErrInvalidTimeOfDay
	}
	return t, nil
}

// Range returns the bounds of the period.
func (t TimeOfDay) Range() (Window, bool) {
	switch t {
	case Morning:
		return Window{Start: "06:00", End: "12:00"}, true
	case Afternoon:
		return Window{Start: "12:00", End: "18:00"}, true
	case Evening:
		return Window{Start: "18:00", End: "23:00"}, true
	case Night:
		return Window{Start: "23:00", End: "06:00"}, true
	default:
		return Window{}, false
	}
}

// FilterByTimeOfDay keeps the pending activities scheduled within the period.
// Activities with time slots are judged by their slots. Otherwise their
// contexts that have both bounds are used. Bounds are compared as plain
// HH:MM strings against the period bounds, so the night period, whose end is
// before its start, only keeps windows that satisfy both literal comparisons.
func FilterByTimeOfDay(all []activities.Activity, t TimeOfDay) []activities.Activity {
	rng, ok := t.Range()
	if !ok {
		return []activities.Activity{}
	}

	within := func(start, end activities.Clock) bool {
		return start >= rng.Start && end <= rng.End
	}

	out := make([]activities.Activity, 0)
	for _, a := range all {
		if a.IsCompleted {
			continue
		}
		if len(a.TimeSlots) > 0 {
			for _, s := range a.TimeSlots {
				if within(s.TimeStart, s.TimeEnd) {
					out = append(out, a)
					break
				}
			}
			continue
		}
		for _, c := range a.Contexts {
			if c.HasTimeBounds() && within(*c.TimeStart, *c.TimeEnd) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}
