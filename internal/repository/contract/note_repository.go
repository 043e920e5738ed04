package contract

import (
	"context"

	"keep-notes-be/internal/entity"
	"keep-notes-be/internal/repository/specification"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// DeleteWhere permanently removes every matching row and reports how many
	// went. At least one spec is required.
	DeleteWhere(ctx context.Context, specs ...specification.Specification) (int64, error)
}
