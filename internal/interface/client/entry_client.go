// Package client is a typed HTTP client for the entries API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/entries-backend/internal/domain/entity"
	"github.com/wichananm65/entries-backend/internal/interface/presenter"
	"github.com/wichananm65/entries-backend/internal/usecase"
)

const (
	entriesPath    = "/api/entries"
	defaultTimeout = 10 * time.Second
)

// Client talks to a running entries server.
type Client struct {
	baseURL string
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout used when the context carries no
// deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New returns a client for the server at baseURL, e.g. http://localhost:5000.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListParams are the list query parameters. Zero values are omitted.
type ListParams struct {
	Page      int
	Limit     int
	SortField string
	SortOrder string
	Name      string
	Email     string
	Phone     string
	Place     string
	Gender    string
	Hobbies   []string
}

func (p ListParams) encode() string {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	for key, val := range map[string]string{
		"sortField": p.SortField,
		"sortOrder": p.SortOrder,
		"name":      p.Name,
		"email":     p.Email,
		"phone":     p.Phone,
		"place":     p.Place,
		"gender":    p.Gender,
	} {
		if val != "" {
			v.Set(key, val)
		}
	}
	for _, h := range p.Hobbies {
		v.Add("hobbies", h)
	}
	return v.Encode()
}

func (c *Client) List(ctx context.Context, params ListParams) (*presenter.ListResponse, error) {
	agent := fiber.Get(c.baseURL + entriesPath)
	if qs := params.encode(); qs != "" {
		agent.QueryString(qs)
	}

	var out presenter.ListResponse
	if err := c.do(ctx, agent, fiber.StatusOK, &out); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return &out, nil
}

func (c *Client) Get(ctx context.Context, id string) (*presenter.EntryResponse, error) {
	var out presenter.EntryResponse
	if err := c.do(ctx, fiber.Get(c.entryURL(id)), fiber.StatusOK, &out); err != nil {
		return nil, fmt.Errorf("get entry %s: %w", id, err)
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, input usecase.EntryInput) (*presenter.EntryResponse, error) {
	var out presenter.EntryResponse
	if err := c.do(ctx, fiber.Post(c.baseURL+entriesPath).JSON(input), fiber.StatusCreated, &out); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id string, input usecase.EntryInput) (*presenter.EntryResponse, error) {
	var out presenter.EntryResponse
	if err := c.do(ctx, fiber.Put(c.entryURL(id)).JSON(input), fiber.StatusOK, &out); err != nil {
		return nil, fmt.Errorf("update entry %s: %w", id, err)
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.do(ctx, fiber.Delete(c.entryURL(id)), fiber.StatusOK, nil); err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}
	return nil
}

func (c *Client) entryURL(id string) string {
	return c.baseURL + entriesPath + "/" + url.PathEscape(id)
}

// do sends the request and decodes a successful body into out. Error
// answers are mapped back to the domain sentinels.
func (c *Client) do(ctx context.Context, agent *fiber.Agent, want int, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	agent.Timeout(timeout)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", entity.ErrUnavailable, errors.Join(errs...))
	}

	if code != want {
		return decodeError(code, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(code int, body []byte) error {
	var payload presenter.ValidationErrorResponse
	_ = json.Unmarshal(body, &payload)

	switch {
	case code == fiber.StatusNotFound:
		return entity.ErrNotFound
	case code == fiber.StatusBadRequest && payload.Message == "Email already exists":
		return entity.ErrDuplicateEmail
	case code == fiber.StatusBadRequest && len(payload.Errors) > 0:
		verr := &entity.ValidationError{}
		for _, msg := range payload.Errors {
			verr.Errors = append(verr.Errors, entity.FieldError{Message: msg})
		}
		return verr
	case code == fiber.StatusBadRequest:
		return fmt.Errorf("%w: %s", entity.ErrValidation, payload.Message)
	case code >= fiber.StatusInternalServerError:
		return fmt.Errorf("%w: status %d", entity.ErrUnavailable, code)
	default:
		return fmt.Errorf("unexpected status %d: %s", code, strings.TrimSpace(string(body)))
	}
}
