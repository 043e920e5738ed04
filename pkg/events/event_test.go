package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNoteEvents(t *testing.T) {
	at := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	userId := uuid.New()
	noteId := uuid.New()

	trashed := NewNoteTrashed(userId, noteId, at)
	assert.Equal(t, TypeNoteTrashed, trashed.EventType())
	assert.Equal(t, at, trashed.Timestamp())
	assert.Equal(t, noteId.String(), trashed.Payload()["note_id"])

	emptied := NewTrashEmptied(userId, 3, at)
	assert.Equal(t, TypeTrashEmptied, emptied.EventType())
	assert.Equal(t, int64(3), emptied.Payload()["removed"])

	swept := NewTrashSwept(5, at.Add(-7*24*time.Hour), at)
	assert.Equal(t, TypeTrashSwept, swept.EventType())
	assert.Equal(t, "2025-06-03T12:00:00Z", swept.Payload()["cutoff"])
}

func TestNopPublisher(t *testing.T) {
	p := NewNopPublisher()
	assert.NoError(t, p.Publish(context.Background(), NewUserRegistered(uuid.New(), "a@b.c", time.Now())))
}
