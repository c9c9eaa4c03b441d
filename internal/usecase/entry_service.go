package usecase

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/wichananm65/entries-backend/internal/domain/entity"
	"github.com/wichananm65/entries-backend/internal/domain/repository"
)

// EntryService implements EntryUsecase with repository dependency.
// Every write path normalizes and validates before touching the store.
type EntryService struct {
	repo         repository.EntryRepository
	validate     *validator.Validate
	defaultLimit int
	maxLimit     int
}

// Option configures an EntryService.
type Option func(*EntryService)

// WithListLimits overrides the default and maximum page size of List.
func WithListLimits(defaultLimit, maxLimit int) Option {
	return func(s *EntryService) {
		s.defaultLimit = defaultLimit
		s.maxLimit = maxLimit
	}
}

func NewEntryService(repo repository.EntryRepository, opts ...Option) *EntryService {
	s := &EntryService{
		repo:         repo,
		validate:     newValidator(),
		defaultLimit: entity.DefaultLimit,
		maxLimit:     entity.MaxLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ EntryUsecase = (*EntryService)(nil)

func (s *EntryService) Create(ctx context.Context, input EntryInput) (*entity.Entry, error) {
	fields := normalizeFields(input)
	if err := validateFields(s.validate, fields); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, fields)
}

func (s *EntryService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Entry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *EntryService) Update(ctx context.Context, id uuid.UUID, input EntryInput) (*entity.Entry, error) {
	fields := normalizeFields(input)
	if err := validateFields(s.validate, fields); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *EntryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// List normalizes q (defaults, clamping, hobby clean-up) and returns one
// page of matches plus the total count.
func (s *EntryService) List(ctx context.Context, q entity.Query) (*entity.ListResult, error) {
	q.Normalize(s.defaultLimit, s.maxLimit)
	q.Filter.Hobbies = normalizeHobbies(q.Filter.Hobbies)

	total, entries, err := s.repo.Query(ctx, q)
	if err != nil {
		return nil, err
	}

	return &entity.ListResult{
		Total:   total,
		Page:    q.Page,
		Limit:   q.Limit,
		Entries: entries,
	}, nil
}

func (s *EntryService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
