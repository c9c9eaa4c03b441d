package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/wichananm65/entries-backend/internal/domain/entity"
	"github.com/wichananm65/entries-backend/internal/interface/presenter"
	"github.com/wichananm65/entries-backend/internal/usecase"
)

const (
	msgNotFound       = "Entry not found"
	msgDuplicateEmail = "Email already exists"
	msgInvalidBody    = "Invalid request body"
	msgDeleted        = "Entry deleted successfully"
)

// EntryHandler adapts HTTP requests to use case calls.
type EntryHandler struct {
	usecase       usecase.EntryUsecase
	presenter     *presenter.EntryPresenter
	strictFilters bool
}

func NewEntryHandler(usecase usecase.EntryUsecase, presenter *presenter.EntryPresenter, strictFilters bool) *EntryHandler {
	return &EntryHandler{usecase: usecase, presenter: presenter, strictFilters: strictFilters}
}

// RegisterRoutes mounts the entry endpoints on r, typically the
// /api/entries group.
func (h *EntryHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/:id", h.get)
	r.Put("/:id", h.update)
	r.Delete("/:id", h.delete)
}

func (h *EntryHandler) list(c *fiber.Ctx) error {
	q, err := parseListQuery(c, h.strictFilters)
	if err != nil {
		return h.fail(c, err)
	}

	res, err := h.usecase.List(c.UserContext(), q)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(h.presenter.ToList(res))
}

func (h *EntryHandler) get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	e, err := h.usecase.GetByID(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(h.presenter.ToResponse(e))
}

func (h *EntryHandler) create(c *fiber.Ctx) error {
	var input usecase.EntryInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(presenter.MessageResponse{Message: msgInvalidBody})
	}

	e, err := h.usecase.Create(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.presenter.ToResponse(e))
}

func (h *EntryHandler) update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	var input usecase.EntryInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(presenter.MessageResponse{Message: msgInvalidBody})
	}

	e, err := h.usecase.Update(c.UserContext(), id, input)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(h.presenter.ToResponse(e))
}

func (h *EntryHandler) delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	if err := h.usecase.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(presenter.MessageResponse{Message: msgDeleted})
}

// Health reports whether the entry store is reachable.
func (h *EntryHandler) Health(c *fiber.Ctx) error {
	if err := h.usecase.Ping(c.UserContext()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(presenter.HealthResponse{Status: "unavailable"})
	}
	return c.JSON(presenter.HealthResponse{Status: "ok"})
}

// fail answers client errors directly and hands everything else to the
// app's ErrorHandler.
func (h *EntryHandler) fail(c *fiber.Ctx, err error) error {
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(h.presenter.ToValidationError(verr))
	case errors.Is(err, entity.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(presenter.ValidationErrorResponse{Message: "Validation error", Errors: []string{}})
	case errors.Is(err, entity.ErrDuplicateEmail):
		return c.Status(fiber.StatusBadRequest).JSON(presenter.MessageResponse{Message: msgDuplicateEmail})
	case errors.Is(err, entity.ErrNotFound):
		return notFound(c)
	default:
		return err
	}
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(presenter.MessageResponse{Message: msgNotFound})
}

// parseID reads the :id param. A value that is not a UUID cannot name an
// entry.
func parseID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
