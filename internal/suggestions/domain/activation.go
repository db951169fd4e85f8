package domain

import (
	"time"

	activities "github.com/manumorante/whats-next/internal/activities/domain"
)

// ActiveContexts returns the contexts whose window contains now, in input order.
func ActiveContexts(all []activities.Context, now time.Time) []activities.Context {
	return activeAt(all, MomentOf(now))
}

func activeAt(all []activities.Context, m Moment) []activities.Context {
	active := make([]activities.Context, 0, len(all))
	for _, c := range all {
		if isActive(c, m) {
			active = append(active, c)
		}
	}
	return active
}

func isActive(c activities.Context, m Moment) bool {
	if !c.AppliesOn(m.Day) {
		return false
	}
	if !c.HasTimeBounds() {
		return true
	}
	// Day filtering already happened above.
	return Window{Start: *c.TimeStart, End: *c.TimeEnd}.Matches(m)
}

// ContextInput carries contexts into the engine either as the full set, to be
// evaluated against now, or as a list some other component already evaluated.
type ContextInput struct {
	contexts  []activities.Context
	evaluated bool
}

// FromAllContexts wraps every known context for local evaluation.
func FromAllContexts(all []activities.Context) ContextInput {
	return ContextInput{contexts: all}
}

// FromActiveContexts wraps a pre-computed active list, used as is.
func FromActiveContexts(active []activities.Context) ContextInput {
	return ContextInput{contexts: active, evaluated: true}
}

// Active resolves the active contexts at now.
func (in ContextInput) Active(now time.Time) []activities.Context {
	if in.evaluated {
		if in.contexts == nil {
			return []activities.Context{}
		}
		return in.contexts
	}
	return ActiveContexts(in.contexts, now)
}
