package specification

import (
	"time"

	"keep-notes-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteTrashed struct {
	Trashed bool
}

func (s NoteTrashed) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_trashed = ?", s.Trashed)
}

type NoteArchived struct {
	Archived bool
}

func (s NoteArchived) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_archived = ?", s.Archived)
}

// TrashedOnOrBefore matches trashed notes whose trashed_at is at or before Cutoff.
type TrashedOnOrBefore struct {
	Cutoff time.Time
}

func (s TrashedOnOrBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_trashed = ? AND trashed_at <= ?", true, s.Cutoff)
}

// NoteVisibility builds the filter and ordering for one of the three views.
//
// Trash view: every trashed note, most recently trashed first. The archived
// flag is ignored there. Any other view never shows trashed notes and orders
// pinned notes first, then by most recent update.
func NoteVisibility(userId uuid.UUID, view entity.NoteView) []Specification {
	specs := []Specification{UserOwnedBy{UserID: userId}}

	if view.Trashed {
		return append(specs,
			NoteTrashed{Trashed: true},
			OrderBy{Field: "trashed_at", Desc: true},
		)
	}

	return append(specs,
		NoteTrashed{Trashed: false},
		NoteArchived{Archived: view.Archived},
		OrderBy{Field: "is_pinned", Desc: true},
		OrderBy{Field: "updated_at", Desc: true},
	)
}

// ExpiredTrash selects notes of every owner that the retention sweep removes.
func ExpiredTrash(now time.Time) []Specification {
	return []Specification{TrashedOnOrBefore{Cutoff: entity.TrashCutoff(now)}}
}
