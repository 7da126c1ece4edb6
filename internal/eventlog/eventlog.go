package eventlog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is one domain fact recorded for the activity feed and audit trail,
// e.g. expense.created or settlement.recorded.
type Event struct {
	ID        uuid.UUID         `json:"id,omitempty"`
	Type      string            `json:"event_type,omitempty"`
	Data      any               `json:"event_data,omitempty"`
	Metadata  map[string]string `json:"event_metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// EventOption configures an Event.
type EventOption func(*Event)

// WithType sets the event type.
func WithType(eventType string) EventOption {
	return func(e *Event) {
		e.Type = eventType
	}
}

// WithData sets the event payload.
func WithData(data any) EventOption {
	return func(e *Event) {
		e.Data = data
	}
}

// WithMetadata sets the event metadata.
func WithMetadata(metadata map[string]string) EventOption {
	return func(e *Event) {
		e.Metadata = metadata
	}
}

// NewEvent builds an event with a fresh id and timestamp.
func NewEvent(opts ...EventOption) Event {
	e := Event{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// EventLogger persists events.
type EventLogger interface {
	Save(ctx context.Context, e Event) error
}
