package events

import (
	"context"
	"time"
)

const (
	TypeUserRegistered = "USER_REGISTERED"
	TypeNoteTrashed    = "NOTE_TRASHED"
	TypeTrashEmptied   = "TRASH_EMPTIED"
	TypeTrashSwept     = "TRASH_SWEPT"
)

// Event is anything that can be put on the bus.
type Event interface {
	// EventType is the subject suffix, e.g. "NOTE_TRASHED".
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Publisher delivers events on a best-effort basis. Callers log failures and
// move on.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type nopPublisher struct{}

// NewNopPublisher is used when no bus is configured.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, Event) error {
	return nil
}
