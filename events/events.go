// Package events publishes reservation lifecycle events for downstream
// consumers such as realtime dashboards.
package events

import (
	"context"
	"strconv"
	"time"
)

const (
	EntityReservation = "reservation"

	ActionCreated       = "created"
	ActionStatusChanged = "status_changed"
)

// Event is the envelope written to the broker.
type Event struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId"`
	Topic      string            `json:"topic"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// New builds an event for entity/action. Topic is entity.action.
func New(entity, action string, resourceID uint, data any) Event {
	return Event{
		Entity:     entity,
		Action:     action,
		ResourceID: strconv.FormatUint(uint64(resourceID), 10),
		Topic:      entity + "." + action,
		Metadata:   map[string]string{},
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
