package domain

import (
	"fmt"
	"strings"
	"time"

	activities "github.com/manumorante/whats-next/internal/activities/domain"
)

// Rule weights.
const (
	ContextMatchPoints   = 50
	TimeSlotMatchPoints  = 60
	UrgentPoints         = 40
	ImportantPoints      = 25
	SomedayPoints        = 10
	DailyPendingPoints   = 20
	EnergyAlignedPoints  = 15
	RecentPenaltyPoints  = 30
	PartialPenaltyPoints = 15
)

const (
	recentWindow  = 2 * time.Hour
	partialWindow = 6 * time.Hour
)

// ReasonSeparator joins reasons into a single display string.
const ReasonSeparator = " • "

// Result is the score of one activity and the reasons behind it, in rule order.
type Result struct {
	Score   int
	Reasons []string
}

// Reason joins the reasons for display.
func (r Result) Reason() string {
	return strings.Join(r.Reasons, ReasonSeparator)
}

// Score rates how well a fits now. The boolean is false when the activity must
// be skipped: it has no schedule at all, or nothing in its schedule covers now.
func Score(a activities.Activity, active []activities.Context, now time.Time) (Result, bool) {
	return scoreAt(a, active, now, MomentOf(now))
}

func scoreAt(a activities.Activity, active []activities.Context, now time.Time, m Moment) (Result, bool) {
	if !a.IsSchedulable() {
		return Result{}, false
	}

	r := Result{Reasons: []string{}}
	matched := false

	if c, ok := firstActiveContext(a.Contexts, active); ok {
		r.add(ContextMatchPoints, "Contexto: "+c.Label)
		matched = true
	}

	for _, slot := range a.TimeSlots {
		if SlotWindow(slot).Matches(m) {
			r.add(TimeSlotMatchPoints, fmt.Sprintf("Horario: %s-%s", slot.TimeStart, slot.TimeEnd))
			matched = true
			break
		}
	}

	if !matched {
		return Result{}, false
	}

	switch a.Priority {
	case activities.PriorityUrgent:
		r.add(UrgentPoints, "Must Do")
	case activities.PriorityImportant:
		r.add(ImportantPoints, "Should Do")
	case activities.PrioritySomeday:
		r.Score += SomedayPoints
	}

	if a.IsRecurring && a.RecurrenceType == activities.RecurrenceDaily && !a.CompletedOn(now) {
		r.add(DailyPendingPoints, "Pendiente hoy")
	}

	if reason, ok := energyAlignment(now.Hour(), a.EnergyLevel); ok {
		r.add(EnergyAlignedPoints, reason)
	}

	if a.LastCompleted != nil {
		elapsed := now.Sub(*a.LastCompleted)
		switch {
		case elapsed < recentWindow:
			r.add(-RecentPenaltyPoints, "Completada recientemente")
		case elapsed < partialWindow:
			r.Score -= PartialPenaltyPoints
		}
	}

	return r, true
}

func (r *Result) add(points int, reason string) {
	r.Score += points
	r.Reasons = append(r.Reasons, reason)
}

// firstActiveContext returns the first of the activity's contexts that is
// active, matched by id.
func firstActiveContext(linked, active []activities.Context) (activities.Context, bool) {
	if len(linked) == 0 || len(active) == 0 {
		return activities.Context{}, false
	}
	ids := make(map[int64]struct{}, len(active))
	for _, c := range active {
		ids[c.ID] = struct{}{}
	}
	for _, c := range linked {
		if _, ok := ids[c.ID]; ok {
			return c, true
		}
	}
	return activities.Context{}, false
}

// energyAlignment returns the bonus reason when the activity's energy level
// suits the hour. Hours 0 to 5 never get a bonus.
func energyAlignment(hour int, level activities.EnergyLevel) (string, bool) {
	switch {
	case hour >= 6 && hour < 12 && level == activities.EnergyHigh:
		return "Energía alta - ideal ahora", true
	case hour >= 12 && hour < 18 && level == activities.EnergyMedium:
		return "Energía media - ideal ahora", true
	case hour >= 18 && level == activities.EnergyLow:
		return "Energía baja - ideal ahora", true
	default:
		return "", false
	}
}
