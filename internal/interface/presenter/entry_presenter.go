package presenter

import (
	"time"

	"github.com/wichananm65/entries-backend/internal/domain/entity"
)

// EntryPresenter shapes domain entities for delivery layer responses.
type EntryPresenter struct{}

func NewEntryPresenter() *EntryPresenter {
	return &EntryPresenter{}
}

// EntryResponse keeps the "_id" key older clients read.
type EntryResponse struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Hobbies   []string `json:"hobbies"`
	Place     string   `json:"place"`
	Gender    string   `json:"gender"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

// ListResponse is the paged list envelope.
type ListResponse struct {
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Data  []*EntryResponse `json:"data"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (p *EntryPresenter) ToResponse(e *entity.Entry) *EntryResponse {
	if e == nil {
		return nil
	}
	hobbies := e.Hobbies
	if hobbies == nil {
		hobbies = []string{}
	}
	return &EntryResponse{
		ID:        e.ID.String(),
		Name:      e.Name,
		Email:     e.Email,
		Phone:     e.Phone,
		Hobbies:   hobbies,
		Place:     e.Place,
		Gender:    string(e.Gender),
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: e.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (p *EntryPresenter) ToList(res *entity.ListResult) *ListResponse {
	data := make([]*EntryResponse, 0, len(res.Entries))
	for i := range res.Entries {
		data = append(data, p.ToResponse(&res.Entries[i]))
	}
	return &ListResponse{
		Total: res.Total,
		Page:  res.Page,
		Limit: res.Limit,
		Data:  data,
	}
}

func (p *EntryPresenter) ToValidationError(err *entity.ValidationError) *ValidationErrorResponse {
	return &ValidationErrorResponse{
		Message: "Validation error",
		Errors:  err.Messages(),
	}
}
