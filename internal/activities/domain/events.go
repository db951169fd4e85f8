package domain

import (
	"time"

	"github.com/google/uuid"
)

// Routing keys for change events.
const (
	RoutingKeyActivityCreated   = "activities.activity.created"
	RoutingKeyActivityUpdated   = "activities.activity.updated"
	RoutingKeyActivityDeleted   = "activities.activity.deleted"
	RoutingKeyActivityCompleted = "activities.activity.completed"
	RoutingKeyActivityToggled   = "activities.activity.toggled"
	RoutingKeyContextChanged    = "activities.context.changed"
	RoutingKeyCategoryChanged   = "activities.category.changed"
)

// ChangeEvent records that stored data changed.
type ChangeEvent struct {
	EventID    uuid.UUID      `json:"event_id"`
	RoutingKey string         `json:"routing_key"`
	EntityID   int64          `json:"entity_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

// NewChangeEvent creates an event for the entity.
func NewChangeEvent(routingKey string, entityID int64, data map[string]any) ChangeEvent {
	return ChangeEvent{
		EventID:    uuid.New(),
		RoutingKey: routingKey,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}
