package entity

import (
	"time"

	"github.com/google/uuid"
)

const DefaultNoteColor = "white"

// TrashRetention is how long a note stays recoverable in the trash before the
// sweeper removes it for good.
const TrashRetention = 7 * 24 * time.Hour

type Note struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Title      string
	Content    string
	Color      string
	IsPinned   bool
	IsArchived bool
	IsTrashed  bool
	TrashedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NoteView selects which notes a listing shows. Trashed wins over Archived.
type NoteView struct {
	Archived bool
	Trashed  bool
}

// Touch records a mutation. updated_at never goes below created_at.
func (n *Note) Touch(now time.Time) {
	if now.Before(n.CreatedAt) {
		now = n.CreatedAt
	}
	n.UpdatedAt = now
}

// SetTrashed keeps trashed_at in step with is_trashed. Trashing an already
// trashed note restarts its retention window.
func (n *Note) SetTrashed(trashed bool, now time.Time) {
	n.IsTrashed = trashed
	if trashed {
		t := now
		n.TrashedAt = &t
	} else {
		n.TrashedAt = nil
	}
}

func (n *Note) ToggleArchive(now time.Time) {
	n.IsArchived = !n.IsArchived
	n.Touch(now)
}

func (n *Note) TogglePin(now time.Time) {
	n.IsPinned = !n.IsPinned
	n.Touch(now)
}

func (n *Note) ToggleTrash(now time.Time) {
	n.SetTrashed(!n.IsTrashed, now)
	n.Touch(now)
}

// MoveToTrash is the soft delete. It never removes the row.
func (n *Note) MoveToTrash(now time.Time) {
	n.SetTrashed(true, now)
	n.Touch(now)
}

// TrashCutoff is the newest trashed_at that the sweeper may remove at now.
func TrashCutoff(now time.Time) time.Time {
	return now.Add(-TrashRetention)
}

// ExpiredAt reports whether the sweeper would remove the note at now.
func (n *Note) ExpiredAt(now time.Time) bool {
	return n.IsTrashed && n.TrashedAt != nil && !n.TrashedAt.After(TrashCutoff(now))
}
