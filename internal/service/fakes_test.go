package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"keep-notes-be/internal/entity"
	"keep-notes-be/internal/repository/contract"
	"keep-notes-be/internal/repository/specification"
	"keep-notes-be/internal/repository/unitofwork"
	"keep-notes-be/pkg/events"

	"github.com/google/uuid"
)

// memStore backs the fake repositories. It understands the specifications
// the services build, so the filtering and ordering rules are exercised
// without a database.
type memStore struct {
	mu    sync.Mutex
	notes map[uuid.UUID]entity.Note
	users map[uuid.UUID]entity.User

	begun, committed int
}

func newMemStore() *memStore {
	return &memStore{
		notes: map[uuid.UUID]entity.Note{},
		users: map[uuid.UUID]entity.User{},
	}
}

func (m *memStore) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: m}
}

func (m *memStore) put(note entity.Note) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes[note.Id] = note
}

func (m *memStore) get(id uuid.UUID) (entity.Note, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	return n, ok
}

type fakeUow struct {
	store *memStore
}

func (u *fakeUow) Begin(ctx context.Context) error {
	u.store.mu.Lock()
	u.store.begun++
	u.store.mu.Unlock()
	return nil
}

func (u *fakeUow) Commit() error {
	u.store.mu.Lock()
	u.store.committed++
	u.store.mu.Unlock()
	return nil
}

func (u *fakeUow) Rollback() error { return nil }

func (u *fakeUow) NoteRepository() contract.NoteRepository { return &fakeNoteRepo{store: u.store} }

func (u *fakeUow) UserRepository() contract.UserRepository { return &fakeUserRepo{store: u.store} }

func noteMatches(n entity.Note, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if n.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if n.UserId != s.UserID {
				return false
			}
		case specification.NoteTrashed:
			if n.IsTrashed != s.Trashed {
				return false
			}
		case specification.NoteArchived:
			if n.IsArchived != s.Archived {
				return false
			}
		case specification.TrashedOnOrBefore:
			if !n.IsTrashed || n.TrashedAt == nil || n.TrashedAt.After(s.Cutoff) {
				return false
			}
		}
	}
	return true
}

func compareField(a, b entity.Note, field string) int {
	boolCmp := func(x, y bool) int {
		switch {
		case x == y:
			return 0
		case x:
			return 1
		default:
			return -1
		}
	}
	timeCmp := func(x, y time.Time) int { return x.Compare(y) }

	switch field {
	case "is_pinned":
		return boolCmp(a.IsPinned, b.IsPinned)
	case "updated_at":
		return timeCmp(a.UpdatedAt, b.UpdatedAt)
	case "created_at":
		return timeCmp(a.CreatedAt, b.CreatedAt)
	case "trashed_at":
		var x, y time.Time
		if a.TrashedAt != nil {
			x = *a.TrashedAt
		}
		if b.TrashedAt != nil {
			y = *b.TrashedAt
		}
		return timeCmp(x, y)
	}
	return 0
}

func sortNotes(notes []entity.Note, specs []specification.Specification) {
	var orders []specification.OrderBy
	for _, spec := range specs {
		if o, ok := spec.(specification.OrderBy); ok {
			orders = append(orders, o)
		}
	}
	sort.SliceStable(notes, func(i, j int) bool {
		for _, o := range orders {
			c := compareField(notes[i], notes[j], o.Field)
			if o.Desc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
}

type fakeNoteRepo struct {
	store *memStore
}

func (r *fakeNoteRepo) Create(ctx context.Context, note *entity.Note) error {
	r.store.put(*note)
	return nil
}

func (r *fakeNoteRepo) Update(ctx context.Context, note *entity.Note) error {
	r.store.put(*note)
	return nil
}

func (r *fakeNoteRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	notes, _ := r.FindAll(ctx, specs...)
	if len(notes) == 0 {
		return nil, nil
	}
	return notes[0], nil
}

func (r *fakeNoteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	r.store.mu.Lock()
	var matched []entity.Note
	for _, n := range r.store.notes {
		if noteMatches(n, specs) {
			matched = append(matched, n)
		}
	}
	r.store.mu.Unlock()

	sortNotes(matched, specs)
	res := make([]*entity.Note, len(matched))
	for i := range matched {
		n := matched[i]
		res[i] = &n
	}
	return res, nil
}

func (r *fakeNoteRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	notes, _ := r.FindAll(ctx, specs...)
	return int64(len(notes)), nil
}

func (r *fakeNoteRepo) DeleteWhere(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var removed int64
	for id, n := range r.store.notes {
		if noteMatches(n, specs) {
			delete(r.store.notes, id)
			removed++
		}
	}
	return removed, nil
}

type fakeUserRepo struct {
	store *memStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[user.Id] = *user
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		ok := true
		for _, spec := range specs {
			switch s := spec.(type) {
			case specification.ByID:
				ok = ok && u.Id == s.ID
			case specification.ByEmail:
				ok = ok && u.Email == normalizeEmail(s.Email)
			}
		}
		if ok {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	u, _ := r.FindOne(ctx, specs...)
	if u == nil {
		return 0, nil
	}
	return 1, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

// fakeClock advances only when told to.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
