package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidPriority       = errors.New("invalid priority value")
	ErrInvalidEnergyLevel    = errors.New("invalid energy level")
	ErrInvalidRecurrenceType = errors.New("invalid recurrence type")
)

// Priority represents how pressing an activity is.
type Priority string

const (
	PriorityUrgent    Priority = "urgent"
	PriorityImportant Priority = "important"
	PrioritySomeday   Priority = "someday"
)

// ParsePriority creates a Priority from a string. Empty input yields the default.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PrioritySomeday, nil
	}
	p := Priority(s)
	if !p.IsValid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

// IsValid checks if the priority is valid.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityUrgent, PriorityImportant, PrioritySomeday:
		return true
	default:
		return false
	}
}

// Rank orders priorities for listing (lower comes first).
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityImportant:
		return 1
	default:
		return 2
	}
}

// EnergyLevel is how much energy an activity demands.
// The zero value means the level is unknown.
type EnergyLevel string

const (
	EnergyNone   EnergyLevel = ""
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

// ParseEnergyLevel creates an EnergyLevel from a string.
func ParseEnergyLevel(s string) (EnergyLevel, error) {
	e := EnergyLevel(strings.ToLower(strings.TrimSpace(s)))
	if !e.IsValid() {
		return EnergyNone, ErrInvalidEnergyLevel
	}
	return e, nil
}

// IsValid checks if the energy level is valid. EnergyNone is valid.
func (e EnergyLevel) IsValid() bool {
	switch e {
	case EnergyNone, EnergyLow, EnergyMedium, EnergyHigh:
		return true
	default:
		return false
	}
}

// RecurrenceType represents how often a recurring activity repeats.
type RecurrenceType string

const (
	RecurrenceNone    RecurrenceType = ""
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
)

// ParseRecurrenceType creates a RecurrenceType from a string.
func ParseRecurrenceType(s string) (RecurrenceType, error) {
	r := RecurrenceType(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return RecurrenceNone, ErrInvalidRecurrenceType
	}
	return r, nil
}

// IsValid checks if the recurrence type is valid.
func (r RecurrenceType) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	default:
		return false
	}
}
