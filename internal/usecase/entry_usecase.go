package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/wichananm65/entries-backend/internal/domain/entity"
)

// EntryUsecase exposes application-level operations for Entry.
type EntryUsecase interface {
	Create(ctx context.Context, input EntryInput) (*entity.Entry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Entry, error)
	Update(ctx context.Context, id uuid.UUID, input EntryInput) (*entity.Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q entity.Query) (*entity.ListResult, error)
	Ping(ctx context.Context) error
}

// EntryInput carries the user-supplied fields of an entry. Create and
// update both take the complete set; update replaces every field.
type EntryInput struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Hobbies []string `json:"hobbies"`
	Place   string   `json:"place"`
	Gender  string   `json:"gender"`
}
