package events

import (
	"time"

	"github.com/google/uuid"
)

func NewUserRegistered(userId uuid.UUID, email string, at time.Time) Event {
	return BaseEvent{
		Type:       TypeUserRegistered,
		OccurredAt: at,
		Data: map[string]interface{}{
			"user_id": userId.String(),
			"email":   email,
		},
	}
}

func NewNoteTrashed(userId, noteId uuid.UUID, at time.Time) Event {
	return BaseEvent{
		Type:       TypeNoteTrashed,
		OccurredAt: at,
		Data: map[string]interface{}{
			"user_id": userId.String(),
			"note_id": noteId.String(),
		},
	}
}

func NewTrashEmptied(userId uuid.UUID, removed int64, at time.Time) Event {
	return BaseEvent{
		Type:       TypeTrashEmptied,
		OccurredAt: at,
		Data: map[string]interface{}{
			"user_id": userId.String(),
			"removed": removed,
		},
	}
}

func NewTrashSwept(removed int64, cutoff, at time.Time) Event {
	return BaseEvent{
		Type:       TypeTrashSwept,
		OccurredAt: at,
		Data: map[string]interface{}{
			"removed": removed,
			"cutoff":  cutoff.UTC().Format(time.RFC3339),
		},
	}
}
