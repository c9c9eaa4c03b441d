package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/wichananm65/entries-backend/internal/domain/entity"
)

// EntryRepository defines persistence behavior for the Entry entity.
//
// Implementations assign ID, CreatedAt and UpdatedAt, enforce email
// uniqueness (entity.ErrDuplicateEmail) and report missing ids with
// entity.ErrNotFound. Failures of the backing engine wrap
// entity.ErrUnavailable.
type EntryRepository interface {
	Create(ctx context.Context, fields entity.Fields) (*entity.Entry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Entry, error)
	Update(ctx context.Context, id uuid.UUID, fields entity.Fields) (*entity.Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Query returns the number of entries matching q.Filter and the
	// requested page. q must be normalized.
	Query(ctx context.Context, q entity.Query) (int, []entity.Entry, error)
	Ping(ctx context.Context) error
}
