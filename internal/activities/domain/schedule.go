package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidWeekday = errors.New("invalid weekday, use Sun..Sat")
	ErrInvalidTime    = errors.New("invalid time, use HH:MM")
)

// Weekday is a three-letter day code. Weeks start on Sunday.
type Weekday string

const (
	Sunday    Weekday = "Sun"
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
	Saturday  Weekday = "Sat"
)

var weekdays = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayOf returns the day code of t in t's location.
func WeekdayOf(t time.Time) Weekday {
	return weekdays[t.Weekday()]
}

// ParseWeekday validates a day code.
func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(s)
	if !d.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
	}
	return d, nil
}

// IsValid checks if the day code is one of Sun..Sat.
func (d Weekday) IsValid() bool {
	for _, w := range weekdays {
		if d == w {
			return true
		}
	}
	return false
}

// ParseWeekdays validates a list of day codes. A nil list stays nil.
func ParseWeekdays(values []string) ([]Weekday, error) {
	if values == nil {
		return nil, nil
	}
	days := make([]Weekday, 0, len(values))
	for _, v := range values {
		d, err := ParseWeekday(v)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

// Clock is a wall-clock time in zero-padded 24h "HH:MM" form.
// Zero-padding makes string order equal to time order.
type Clock string

const clockLayout = "15:04"

// ClockOf returns the HH:MM of t in t's location.
func ClockOf(t time.Time) Clock {
	return Clock(t.Format(clockLayout))
}

// ParseClock validates an "HH:MM" value.
func ParseClock(s string) (Clock, error) {
	c := Clock(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return c, nil
}

// ParseOptionalClock parses s, mapping the empty string to nil.
func ParseOptionalClock(s string) (*Clock, error) {
	if s == "" {
		return nil, nil
	}
	c, err := ParseClock(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// IsValid reports whether c is exactly two-digit hour, colon, two-digit minute.
func (c Clock) IsValid() bool {
	if len(c) != 5 || c[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if c[i] < '0' || c[i] > '9' {
			return false
		}
	}
	hour := int(c[0]-'0')*10 + int(c[1]-'0')
	minute := int(c[3]-'0')*10 + int(c[4]-'0')
	return hour < 24 && minute < 60
}

// String returns the HH:MM text.
func (c Clock) String() string {
	return string(c)
}
