package domain

import (
	"errors"
	"slices"
	"strings"
	"time"
)

var (
	ErrContextEmptyName     = errors.New("context name cannot be empty")
	ErrContextEmptyLabel    = errors.New("context label cannot be empty")
	ErrContextPartialWindow = errors.New("context needs both time_start and time_end, or neither")
)

// Context is a named recurring weekly time window shared across activities,
// for example "work hours" on weekdays from 09:00 to 17:00.
type Context struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
	// Days restricts the context to some weekdays. Nil means every day; an
	// empty list matches no day.
	Days      []Weekday `json:"days"`
	TimeStart *Clock    `json:"time_start"`
	TimeEnd   *Clock    `json:"time_end"`
	CreatedAt time.Time `json:"created_at"`
}

// NewContext creates a context with normalized and validated fields.
func NewContext(name, label string, days []Weekday, start, end *Clock) (*Context, error) {
	c := &Context{
		Name:      name,
		Label:     label,
		Days:      days,
		TimeStart: start,
		TimeEnd:   end,
	}
	if err := c.Normalize(); err != nil {
		return nil, err
	}
	return c, nil
}

// Normalize trims text fields and validates days and the time window.
func (c *Context) Normalize() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Label = strings.TrimSpace(c.Label)
	if c.Name == "" {
		return ErrContextEmptyName
	}
	if c.Label == "" {
		return ErrContextEmptyLabel
	}
	for _, d := range c.Days {
		if !d.IsValid() {
			return ErrInvalidWeekday
		}
	}
	if (c.TimeStart == nil) != (c.TimeEnd == nil) {
		return ErrContextPartialWindow
	}
	if c.TimeStart != nil && (!c.TimeStart.IsValid() || !c.TimeEnd.IsValid()) {
		return ErrInvalidTime
	}
	return nil
}

// AppliesOn reports whether the context is scheduled on day.
func (c Context) AppliesOn(day Weekday) bool {
	return c.Days == nil || slices.Contains(c.Days, day)
}

// HasTimeBounds reports whether the context is limited to a time range.
// A context missing either bound counts as all day.
func (c Context) HasTimeBounds() bool {
	return c.TimeStart != nil && c.TimeEnd != nil
}
