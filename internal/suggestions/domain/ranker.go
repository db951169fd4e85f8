package domain

import (
	"sort"
	"strings"
	"time"

	activities "github.com/manumorante/whats-next/internal/activities/domain"
)

// DefaultLimit is the number of suggestions returned when the caller does not ask.
const DefaultLimit = 10

// Options narrows a suggestion run.
type Options struct {
	Limit      int
	CategoryID *int64
}

// Suggestion is a scored activity.
type Suggestion struct {
	Activity activities.Activity `json:"activity"`
	Score    int                 `json:"score"`
	Reasons  []string            `json:"reasons"`
}

// Reason joins the reasons for display.
func (s Suggestion) Reason() string {
	return strings.Join(s.Reasons, ReasonSeparator)
}

// Suggest scores the candidate activities against now and returns the best
// ones, highest score first. Ties keep input order. It never returns nil.
func Suggest(all []activities.Activity, active []activities.Context, now time.Time, opts Options) []Suggestion {
	if opts.Limit <= 0 {
		return []Suggestion{}
	}

	m := MomentOf(now)
	out := make([]Suggestion, 0, len(all))
	for _, a := range all {
		if a.IsCompleted {
			continue
		}
		if opts.CategoryID != nil && (a.CategoryID == nil || *a.CategoryID != *opts.CategoryID) {
			continue
		}
		r, ok := scoreAt(a, active, now, m)
		if !ok {
			continue
		}
		out = append(out, Suggestion{Activity: a, Score: r.Score, Reasons: r.Reasons})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}
