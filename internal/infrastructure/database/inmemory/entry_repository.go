package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wichananm65/entries-backend/internal/domain/entity"
	"github.com/wichananm65/entries-backend/internal/domain/repository"
)

// EntryRepository is an in-memory implementation of EntryRepository.
type EntryRepository struct {
	mu      sync.RWMutex
	store   map[uuid.UUID]*entity.Entry
	byEmail map[string]uuid.UUID
	now     func() time.Time
}

var _ repository.EntryRepository = (*EntryRepository)(nil)

func NewEntryRepository() *EntryRepository {
	return &EntryRepository{
		store:   make(map[uuid.UUID]*entity.Entry),
		byEmail: make(map[string]uuid.UUID),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source used for CreatedAt/UpdatedAt.
func (r *EntryRepository) WithClock(now func() time.Time) *EntryRepository {
	r.now = now
	return r
}

func (r *EntryRepository) Create(ctx context.Context, fields entity.Fields) (*entity.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[fields.Email]; taken {
		return nil, entity.ErrDuplicateEmail
	}

	now := r.now()
	e := &entity.Entry{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	e.Apply(fields)

	r.store[e.ID] = e
	r.byEmail[e.Email] = e.ID

	result := clone(e)
	return &result, nil
}

func (r *EntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.store[id]
	if !ok {
		return nil, entity.ErrNotFound
	}

	result := clone(e)
	return &result, nil
}

func (r *EntryRepository) Update(ctx context.Context, id uuid.UUID, fields entity.Fields) (*entity.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.store[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	if owner, taken := r.byEmail[fields.Email]; taken && owner != id {
		return nil, entity.ErrDuplicateEmail
	}

	delete(r.byEmail, e.Email)
	e.Apply(fields)
	e.UpdatedAt = r.now()
	r.byEmail[e.Email] = id

	result := clone(e)
	return &result, nil
}

func (r *EntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.store[id]
	if !ok {
		return entity.ErrNotFound
	}
	delete(r.byEmail, e.Email)
	delete(r.store, id)
	return nil
}

func (r *EntryRepository) Query(ctx context.Context, q entity.Query) (int, []entity.Entry, error) {
	r.mu.RLock()
	matched := make([]entity.Entry, 0, len(r.store))
	for _, e := range r.store {
		if q.Filter.Matches(*e) {
			matched = append(matched, clone(e))
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a := entity.SortValue(matched[i], q.Sort.Field)
		b := entity.SortValue(matched[j], q.Sort.Field)
		if a == b {
			return matched[i].ID.String() < matched[j].ID.String()
		}
		if q.Sort.Order == entity.SortDesc {
			return a > b
		}
		return a < b
	})

	total := len(matched)
	start := q.Offset()
	if start < 0 || start >= total {
		return total, []entity.Entry{}, nil
	}
	end := start + q.Limit
	if end > total || end < start {
		end = total
	}
	return total, matched[start:end], nil
}

func (r *EntryRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func clone(e *entity.Entry) entity.Entry {
	c := *e
	c.Hobbies = append([]string(nil), e.Hobbies...)
	return c
}
