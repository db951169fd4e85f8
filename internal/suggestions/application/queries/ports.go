package queries

import (
	"context"
	"errors"
	"fmt"
	"time"

	activities "github.com/manumorante/whats-next/internal/activities/domain"
	"github.com/manumorante/whats-next/internal/suggestions/domain"
)

// ErrSourceUnavailable is returned when activities or contexts cannot be
// fetched. The suggestion engine itself never fails.
var ErrSourceUnavailable = errors.New("suggestion source unavailable")

// ErrInvalidContextMode is returned for an unknown context mode.
var ErrInvalidContextMode = errors.New("invalid context mode, use evaluate or store")

// ActivitySource lists activities. activities.ActivityRepository satisfies it.
type ActivitySource interface {
	List(ctx context.Context, filter activities.ActivityFilter) ([]activities.Activity, error)
}

// ContextSource lists contexts. activities.ContextRepository satisfies it.
type ContextSource interface {
	List(ctx context.Context) ([]activities.Context, error)
	FindActive(ctx context.Context, now time.Time) ([]activities.Context, error)
}

// ContextMode selects where context activation is computed.
type ContextMode string

const (
	// ContextModeEvaluate loads every context and evaluates windows in process.
	ContextModeEvaluate ContextMode = "evaluate"
	// ContextModeStore asks the store for the contexts active at now.
	ContextModeStore ContextMode = "store"
)

// ParseContextMode validates a mode. Empty means evaluate.
func ParseContextMode(s string) (ContextMode, error) {
	switch ContextMode(s) {
	case "", ContextModeEvaluate:
		return ContextModeEvaluate, nil
	case ContextModeStore:
		return ContextModeStore, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidContextMode, s)
	}
}

// Settings configures the suggestion queries.
type Settings struct {
	// Location is where "now" is evaluated. Nil means the local time zone.
	Location     *time.Location
	Mode         ContextMode
	DefaultLimit int
	// Now overrides the clock, for tests.
	Now func() time.Time
}

func (s Settings) withDefaults() Settings {
	if s.Location == nil {
		s.Location = time.Local
	}
	if s.Mode == "" {
		s.Mode = ContextModeEvaluate
	}
	if s.DefaultLimit == 0 {
		s.DefaultLimit = domain.DefaultLimit
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	return s
}

// snapshot fixes the instant a request is evaluated at.
func (s Settings) snapshot(at time.Time) time.Time {
	if at.IsZero() {
		at = s.Now()
	}
	return at.In(s.Location)
}

func unavailable(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, what, err)
}

// loadActiveContexts resolves the contexts active at now in the given mode.
func loadActiveContexts(ctx context.Context, source ContextSource, mode ContextMode, now time.Time) ([]activities.Context, error) {
	if mode == ContextModeStore {
		active, err := source.FindActive(ctx, now)
		if err != nil {
			return nil, unavailable("contexts", err)
		}
		return active, nil
	}
	all, err := source.List(ctx)
	if err != nil {
		return nil, unavailable("contexts", err)
	}
	return all, nil
}
