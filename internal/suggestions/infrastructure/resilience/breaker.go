package resilience

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	activities "github.com/manumorante/whats-next/internal/activities/domain"
	"github.com/manumorante/whats-next/internal/suggestions/application/queries"
)

// BreakerConfig configures the circuit breakers around the store.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens a breaker.
	FailureThreshold uint32
	// Timeout is how long a breaker stays open before letting a probe through.
	Timeout time.Duration
	// MaxRequests is the number of probes allowed while half-open.
	MaxRequests uint32
}

// DefaultBreakerConfig returns a sensible default configuration.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		Timeout:          30 * time.Second,
		MaxRequests:      1,
	}
}

// StateListener is notified of breaker transitions.
type StateListener func(name string, from, to gobreaker.State)

func settings(name string, cfg BreakerConfig, logger *slog.Logger, listener StateListener) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// Cancelled or timed-out requests say nothing about the store's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
			if listener != nil {
				listener(name, from, to)
			}
		},
	}
}

// ActivitySource guards an activity source with a circuit breaker.
type ActivitySource struct {
	next    queries.ActivitySource
	breaker *gobreaker.CircuitBreaker[[]activities.Activity]
}

// NewActivitySource wraps next.
func NewActivitySource(next queries.ActivitySource, cfg BreakerConfig, logger *slog.Logger, listener StateListener) *ActivitySource {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivitySource{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[[]activities.Activity](settings("activities", cfg, logger, listener)),
	}
}

// List implements queries.ActivitySource. It fails fast with
// gobreaker.ErrOpenState while the breaker is open.
func (s *ActivitySource) List(ctx context.Context, filter activities.ActivityFilter) ([]activities.Activity, error) {
	return s.breaker.Execute(func() ([]activities.Activity, error) {
		return s.next.List(ctx, filter)
	})
}

// State reports the breaker state.
func (s *ActivitySource) State() gobreaker.State {
	return s.breaker.State()
}

// ContextSource guards a context source with a circuit breaker shared by
// both of its reads.
type ContextSource struct {
	next    queries.ContextSource
	breaker *gobreaker.CircuitBreaker[[]activities.Context]
}

// NewContextSource wraps next.
func NewContextSource(next queries.ContextSource, cfg BreakerConfig, logger *slog.Logger, listener StateListener) *ContextSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContextSource{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[[]activities.Context](settings("contexts", cfg, logger, listener)),
	}
}

// List implements queries.ContextSource.
func (s *ContextSource) List(ctx context.Context) ([]activities.Context, error) {
	return s.breaker.Execute(func() ([]activities.Context, error) {
		return s.next.List(ctx)
	})
}

// FindActive implements queries.ContextSource.
func (s *ContextSource) FindActive(ctx context.Context, now time.Time) ([]activities.Context, error) {
	return s.breaker.Execute(func() ([]activities.Context, error) {
		return s.next.FindActive(ctx, now)
	})
}

// State reports the breaker state.
func (s *ContextSource) State() gobreaker.State {
	return s.breaker.State()
}
