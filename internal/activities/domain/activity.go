package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyTitle       = errors.New("activity title cannot be empty")
	ErrInvalidDuration  = errors.New("duration must be positive")
	ErrTimeSlotNoBounds = errors.New("time slot requires time_start and time_end")
)

// Activity is something the user may want to do, with the metadata the
// suggestion engine scores it by.
type Activity struct {
	ID              int64          `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	CategoryID      *int64         `json:"category_id"`
	Category        *Category      `json:"category,omitempty"`
	DurationMinutes *int           `json:"duration_minutes"`
	EnergyLevel     EnergyLevel    `json:"energy_level"`
	Location        string         `json:"location,omitempty"`
	Priority        Priority       `json:"priority"`
	IsRecurring     bool           `json:"is_recurring"`
	RecurrenceType  RecurrenceType `json:"recurrence_type"`
	IsCompleted     bool           `json:"is_completed"`
	CreatedAt       time.Time      `json:"created_at"`

	Contexts  []Context  `json:"contexts"`
	TimeSlots []TimeSlot `json:"time_slots"`

	// Aggregated from the completion log.
	CompletionsCount int        `json:"completions_count"`
	LastCompleted    *time.Time `json:"last_completed"`
}

// NewActivity creates an activity with a normalized title and the default priority.
func NewActivity(title string) (*Activity, error) {
	a := &Activity{Title: title, Priority: PrioritySomeday}
	if err := a.Normalize(); err != nil {
		return nil, err
	}
	return a, nil
}

// Normalize trims text fields and validates enums, duration and time slots.
func (a *Activity) Normalize() error {
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return ErrEmptyTitle
	}
	a.Description = strings.TrimSpace(a.Description)
	a.Location = strings.TrimSpace(a.Location)

	if a.Priority == "" {
		a.Priority = PrioritySomeday
	}
	if !a.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if !a.EnergyLevel.IsValid() {
		return ErrInvalidEnergyLevel
	}
	if !a.RecurrenceType.IsValid() {
		return ErrInvalidRecurrenceType
	}
	if !a.IsRecurring {
		a.RecurrenceType = RecurrenceNone
	}
	if a.DurationMinutes != nil && *a.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	for i := range a.TimeSlots {
		if err := a.TimeSlots[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsSchedulable reports whether the activity has any contexts or time slots.
// Activities without either can never be suggested.
func (a Activity) IsSchedulable() bool {
	return len(a.Contexts) > 0 || len(a.TimeSlots) > 0
}

// ContextIDs returns the ids of the linked contexts in order.
func (a Activity) ContextIDs() []int64 {
	ids := make([]int64, 0, len(a.Contexts))
	for _, c := range a.Contexts {
		ids = append(ids, c.ID)
	}
	return ids
}

// TimeSlot is a recurring window that belongs to a single activity.
type TimeSlot struct {
	ID         int64 `json:"id"`
	ActivityID int64 `json:"activity_id"`
	// DayOfWeek limits the slot to one weekday. Nil means every day.
	DayOfWeek *Weekday `json:"day_of_week"`
	TimeStart Clock    `json:"time_start"`
	TimeEnd   Clock    `json:"time_end"`
}

// Validate checks the slot's day and bounds.
func (s TimeSlot) Validate() error {
	if s.DayOfWeek != nil && !s.DayOfWeek.IsValid() {
		return ErrInvalidWeekday
	}
	if s.TimeStart == "" || s.TimeEnd == "" {
		return ErrTimeSlotNoBounds
	}
	if !s.TimeStart.IsValid() || !s.TimeEnd.IsValid() {
		return ErrInvalidTime
	}
	return nil
}

// Completion is one entry of the append-only completion log.
type Completion struct {
	ID          int64     `json:"id"`
	ActivityID  int64     `json:"activity_id"`
	CompletedAt time.Time `json:"completed_at"`
	Notes       string    `json:"notes,omitempty"`
}

// sameDay checks if two times are on the same calendar day.
func sameDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// CompletedOn reports whether the last completion falls on the calendar date
// of day, evaluated in day's location.
func (a Activity) CompletedOn(day time.Time) bool {
	if a.LastCompleted == nil {
		return false
	}
	return sameDay(a.LastCompleted.In(day.Location()), day)
}
