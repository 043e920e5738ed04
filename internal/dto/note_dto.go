package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateNoteRequest fields are all optional; nil means "use the default".
// Length limits follow the notes table columns.
type CreateNoteRequest struct {
	Title      *string `json:"title" validate:"omitempty,max=200"`
	Content    *string `json:"content"`
	Color      *string `json:"color" validate:"omitempty,max=50"`
	IsPinned   *bool   `json:"is_pinned"`
	IsArchived *bool   `json:"is_archived"`
	IsTrashed  *bool   `json:"is_trashed"`
}

// UpdateNoteRequest is a sparse patch: only non-nil fields are applied.
type UpdateNoteRequest struct {
	Id         uuid.UUID `json:"-"`
	Title      *string   `json:"title" validate:"omitempty,max=200"`
	Content    *string   `json:"content"`
	Color      *string   `json:"color" validate:"omitempty,max=50"`
	IsPinned   *bool     `json:"is_pinned"`
	IsArchived *bool     `json:"is_archived"`
	IsTrashed  *bool     `json:"is_trashed"`
}

type ListNotesRequest struct {
	Archived bool
	Trashed  bool
}

type NoteResponse struct {
	Id         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Color      string     `json:"color"`
	IsPinned   bool       `json:"is_pinned"`
	IsArchived bool       `json:"is_archived"`
	IsTrashed  bool       `json:"is_trashed"`
	TrashedAt  *time.Time `json:"trashed_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type EmptyTrashResponse struct {
	Removed      int64 `json:"removed"`
	AlreadyEmpty bool  `json:"already_empty"`
}

type CleanupTrashResponse struct {
	Removed int64     `json:"removed"`
	Skipped bool      `json:"skipped"`
	Cutoff  time.Time `json:"cutoff"`
}

type TrashSweepPreview struct {
	Expired int64     `json:"expired"`
	Cutoff  time.Time `json:"cutoff"`
}
