package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/manumorante/whats-next/internal/activities/domain"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrContextNotFound  = errors.New("context not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// EventPublisher delivers change events to the event bus.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
}

// Events publishes change events once a unit of work has committed. The data
// is already stored at that point, so failures are logged and not returned.
type Events struct {
	publisher EventPublisher
	logger    *slog.Logger
}

// NewEvents creates an event emitter. A nil publisher drops every event.
func NewEvents(publisher EventPublisher, logger *slog.Logger) *Events {
	if logger == nil {
		logger = slog.Default()
	}
	return &Events{publisher: publisher, logger: logger}
}

func (e *Events) emit(ctx context.Context, routingKey string, entityID int64, data map[string]any) {
	if e == nil || e.publisher == nil {
		return
	}
	event := domain.NewChangeEvent(routingKey, entityID, data)
	payload, err := json.Marshal(event)
	if err != nil {
		e.logger.Error("failed to encode change event", "routing_key", routingKey, "error", err)
		return
	}
	if err := e.publisher.Publish(ctx, routingKey, payload); err != nil {
		e.logger.Warn("failed to publish change event",
			"routing_key", routingKey,
			"entity_id", entityID,
			"error", err,
		)
	}
}
