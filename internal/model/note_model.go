package model

import (
	"time"

	"github.com/google/uuid"
)

// Timestamps are written by the service clock, so GORM's automatic
// tracking is switched off for both columns.
type Note struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title      string     `gorm:"type:varchar(200);not null"`
	Content    string     `gorm:"type:text;not null"`
	Color      string     `gorm:"type:varchar(50);not null"`
	IsPinned   bool       `gorm:"not null"`
	IsArchived bool       `gorm:"not null"`
	IsTrashed  bool       `gorm:"not null"`
	TrashedAt  *time.Time `gorm:"index"`
	CreatedAt  time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt  time.Time  `gorm:"not null;autoUpdateTime:false"`
}

func (Note) TableName() string {
	return "notes"
}
