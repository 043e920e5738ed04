package service

import (
	"context"
	"fmt"
	"time"

	"keep-notes-be/internal/dto"
	"keep-notes-be/internal/entity"
	"keep-notes-be/internal/pkg/apperror"
	"keep-notes-be/internal/pkg/logger"
	"keep-notes-be/internal/repository/specification"
	"keep-notes-be/internal/repository/unitofwork"
	"keep-notes-be/pkg/events"
	"keep-notes-be/pkg/lock"

	"github.com/google/uuid"
)

const (
	trashSweepLockKey = "trash-sweep"
	trashSweepLockTTL = 5 * time.Minute
)

type INoteService interface {
	List(ctx context.Context, userId uuid.UUID, req *dto.ListNotesRequest) ([]*dto.NoteResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	ToggleArchive(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	TogglePin(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	ToggleTrash(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	EmptyTrash(ctx context.Context, userId uuid.UUID) (*dto.EmptyTrashResponse, error)
	CleanupTrash(ctx context.Context) (*dto.CleanupTrashResponse, error)
	PreviewCleanup(ctx context.Context) (*dto.TrashSweepPreview, error)
}

type Clock func() time.Time

type noteService struct {
	uowFactory     unitofwork.RepositoryFactory
	locker         lock.Locker
	eventPublisher events.Publisher
	log            logger.ILogger
	clock          Clock
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	locker lock.Locker,
	eventPublisher events.Publisher,
	log logger.ILogger,
	clock Clock,
) INoteService {
	if clock == nil {
		clock = time.Now
	}
	return &noteService{
		uowFactory:     uowFactory,
		locker:         locker,
		eventPublisher: eventPublisher,
		log:            log,
		clock:          clock,
	}
}

// now is truncated to what a TIMESTAMPTZ column keeps, so a response built
// from memory matches the row read back later.
func (s *noteService) now() time.Time {
	return s.clock().UTC().Truncate(time.Microsecond)
}

func errNoteNotFound() error {
	return apperror.NotFound("Note not found")
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:         note.Id,
		Title:      note.Title,
		Content:    note.Content,
		Color:      note.Color,
		IsPinned:   note.IsPinned,
		IsArchived: note.IsArchived,
		IsTrashed:  note.IsTrashed,
		TrashedAt:  note.TrashedAt,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
	}
}

func (s *noteService) publish(ctx context.Context, evt events.Event) {
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("NOTE_SERVICE", "Failed to publish event", map[string]interface{}{
			"event": evt.EventType(),
			"error": err.Error(),
		})
	}
}

func (s *noteService) List(ctx context.Context, userId uuid.UUID, req *dto.ListNotesRequest) ([]*dto.NoteResponse, error) {
	view := entity.NoteView{Archived: req.Archived, Trashed: req.Trashed}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx, specification.NoteVisibility(userId, view)...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		res = append(res, toNoteResponse(note))
	}
	return res, nil
}

func (s *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	now := s.now()
	note := &entity.Note{
		Id:        uuid.New(),
		UserId:    userId,
		Color:     entity.DefaultNoteColor,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Color != nil {
		note.Color = *req.Color
	}
	if req.IsPinned != nil {
		note.IsPinned = *req.IsPinned
	}
	if req.IsArchived != nil {
		note.IsArchived = *req.IsArchived
	}
	if req.IsTrashed != nil {
		note.SetTrashed(*req.IsTrashed, now)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		return nil, err
	}

	if note.IsTrashed {
		s.publish(ctx, events.NewNoteTrashed(userId, note.Id, now))
	}

	return toNoteResponse(note), nil
}

func (s *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, errNoteNotFound()
	}

	return toNoteResponse(note), nil
}

// mutate locks the owned row, applies fn and saves it in one transaction.
func (s *noteService) mutate(ctx context.Context, userId uuid.UUID, id uuid.UUID, fn func(note *entity.Note, now time.Time)) (*entity.Note, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	repo := uow.NoteRepository()
	note, err := repo.FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
		specification.ForUpdate{},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, errNoteNotFound()
	}

	fn(note, s.now())

	if err := repo.Update(ctx, note); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return note, nil
}

func (s *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	wasTrashed := false
	note, err := s.mutate(ctx, userId, req.Id, func(note *entity.Note, now time.Time) {
		wasTrashed = note.IsTrashed
		if req.Title != nil {
			note.Title = *req.Title
		}
		if req.Content != nil {
			note.Content = *req.Content
		}
		if req.Color != nil {
			note.Color = *req.Color
		}
		if req.IsPinned != nil {
			note.IsPinned = *req.IsPinned
		}
		if req.IsArchived != nil {
			note.IsArchived = *req.IsArchived
		}
		if req.IsTrashed != nil {
			note.SetTrashed(*req.IsTrashed, now)
		}
		note.Touch(now)
	})
	if err != nil {
		return nil, err
	}

	if note.IsTrashed && !wasTrashed {
		s.publish(ctx, events.NewNoteTrashed(userId, note.Id, note.UpdatedAt))
	}

	return toNoteResponse(note), nil
}

func (s *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	note, err := s.mutate(ctx, userId, id, func(note *entity.Note, now time.Time) {
		note.MoveToTrash(now)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.NewNoteTrashed(userId, note.Id, note.UpdatedAt))
	return nil
}

func (s *noteService) ToggleArchive(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	note, err := s.mutate(ctx, userId, id, func(note *entity.Note, now time.Time) {
		note.ToggleArchive(now)
	})
	if err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

func (s *noteService) TogglePin(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	note, err := s.mutate(ctx, userId, id, func(note *entity.Note, now time.Time) {
		note.TogglePin(now)
	})
	if err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

func (s *noteService) ToggleTrash(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	note, err := s.mutate(ctx, userId, id, func(note *entity.Note, now time.Time) {
		note.ToggleTrash(now)
	})
	if err != nil {
		return nil, err
	}

	if note.IsTrashed {
		s.publish(ctx, events.NewNoteTrashed(userId, note.Id, note.UpdatedAt))
	}
	return toNoteResponse(note), nil
}

func (s *noteService) EmptyTrash(ctx context.Context, userId uuid.UUID) (*dto.EmptyTrashResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	removed, err := uow.NoteRepository().DeleteWhere(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.NoteTrashed{Trashed: true},
	)
	if err != nil {
		return nil, err
	}

	if removed > 0 {
		s.publish(ctx, events.NewTrashEmptied(userId, removed, s.now()))
	}

	return &dto.EmptyTrashResponse{
		Removed:      removed,
		AlreadyEmpty: removed == 0,
	}, nil
}

// CleanupTrash permanently removes every owner's notes that have sat in the
// trash for the full retention period. Only one sweep runs at a time; a
// caller that loses the race gets Skipped.
func (s *noteService) CleanupTrash(ctx context.Context) (*dto.CleanupTrashResponse, error) {
	now := s.now()
	cutoff := entity.TrashCutoff(now)

	release, ok, err := s.locker.TryLock(ctx, trashSweepLockKey, trashSweepLockTTL)
	if err != nil {
		return nil, fmt.Errorf("trash sweep lock: %w", err)
	}
	if !ok {
		s.log.Info("NOTE_SERVICE", "Trash sweep already running, skipping", nil)
		return &dto.CleanupTrashResponse{Skipped: true, Cutoff: cutoff}, nil
	}
	defer release()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	removed, err := uow.NoteRepository().DeleteWhere(ctx, specification.ExpiredTrash(now)...)
	if err != nil {
		return nil, err
	}

	s.log.Info("NOTE_SERVICE", "Trash sweep finished", map[string]interface{}{
		"removed": removed,
		"cutoff":  cutoff,
	})
	if removed > 0 {
		s.publish(ctx, events.NewTrashSwept(removed, cutoff, now))
	}

	return &dto.CleanupTrashResponse{Removed: removed, Cutoff: cutoff}, nil
}

// PreviewCleanup counts the notes a sweep would remove right now without
// taking the lock or deleting anything.
func (s *noteService) PreviewCleanup(ctx context.Context) (*dto.TrashSweepPreview, error) {
	now := s.now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	expired, err := uow.NoteRepository().Count(ctx, specification.ExpiredTrash(now)...)
	if err != nil {
		return nil, err
	}

	return &dto.TrashSweepPreview{Expired: expired, Cutoff: entity.TrashCutoff(now)}, nil
}
