package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/entries-backend/internal/domain/entity"
	"github.com/wichananm65/entries-backend/internal/infrastructure/database/inmemory"
	"github.com/wichananm65/entries-backend/internal/interface/presenter"
	"github.com/wichananm65/entries-backend/internal/usecase"
)

func makeApp(strict bool) (*fiber.App, *usecase.EntryService) {
	svc := usecase.NewEntryService(inmemory.NewEntryRepository())
	h := NewEntryHandler(svc, presenter.NewEntryPresenter(), strict)

	app := fiber.New()
	app.Use(recover.New())
	h.RegisterRoutes(app.Group("/api/entries"))
	app.Get("/health", h.Health)
	return app, svc
}

const validBody = `{"name":"Ann","email":"ann@gmail.com","phone":"0812345678","hobbies":["Reading","Coding"],"place":"Bangkok","gender":"Female"}`

func do(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := app.Test(req)
	require.NoError(t, err, "%s %s", method, target)
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, b
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), "invalid json %s", b)
	return v
}

func seedEntries(t *testing.T, svc *usecase.EntryService, hobbies ...[]string) {
	t.Helper()
	for i, h := range hobbies {
		_, err := svc.Create(context.Background(), usecase.EntryInput{
			Name:    fmt.Sprintf("Person %02d", i),
			Email:   fmt.Sprintf("p%02d@gmail.com", i),
			Phone:   "0812345678",
			Hobbies: h,
			Place:   "Bangkok",
			Gender:  "Other",
		})
		require.NoError(t, err)
	}
}

func TestEntryRoutes_Registered(t *testing.T) {
	app, _ := makeApp(false)

	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Method+" "+strings.TrimRight(r.Path, "/")] = true
		}
	}
	for _, want := range []string{
		"GET /api/entries",
		"POST /api/entries",
		"GET /api/entries/:id",
		"PUT /api/entries/:id",
		"DELETE /api/entries/:id",
	} {
		assert.True(t, routes[want], "expected route %q to be registered", want)
	}
}

func TestEntryHandler_CRUDLifecycle(t *testing.T) {
	app, _ := makeApp(false)

	res, body := do(t, app, "POST", "/api/entries", validBody)
	require.Equal(t, fiber.StatusCreated, res.StatusCode, string(body))
	created := decode[presenter.EntryResponse](t, body)
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.CreatedAt)
	assert.Equal(t, "ann@gmail.com", created.Email)
	assert.Contains(t, string(body), `"_id"`)

	res, body = do(t, app, "GET", "/api/entries/"+created.ID, "")
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	fetched := decode[presenter.EntryResponse](t, body)
	assert.Equal(t, "Ann", fetched.Name)
	assert.Len(t, fetched.Hobbies, 2)

	update := strings.Replace(validBody, `"name":"Ann"`, `"name":"Annie"`, 1)
	res, body = do(t, app, "PUT", "/api/entries/"+created.ID, update)
	require.Equal(t, fiber.StatusOK, res.StatusCode, string(body))
	updated := decode[presenter.EntryResponse](t, body)
	assert.Equal(t, "Annie", updated.Name)
	assert.Equal(t, created.ID, updated.ID)

	res, body = do(t, app, "DELETE", "/api/entries/"+created.ID, "")
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, "Entry deleted successfully", decode[presenter.MessageResponse](t, body).Message)

	res, body = do(t, app, "DELETE", "/api/entries/"+created.ID, "")
	require.Equal(t, fiber.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Entry not found", decode[presenter.MessageResponse](t, body).Message)
}

func TestEntryHandler_NotFound(t *testing.T) {
	app, _ := makeApp(false)

	for _, target := range []string{"/api/entries/" + uuid.NewString(), "/api/entries/not-a-uuid"} {
		for _, method := range []string{"GET", "DELETE"} {
			res, _ := do(t, app, method, target, "")
			assert.Equal(t, fiber.StatusNotFound, res.StatusCode, "%s %s", method, target)
		}
		res, _ := do(t, app, "PUT", target, validBody)
		assert.Equal(t, fiber.StatusNotFound, res.StatusCode, "PUT %s", target)
	}
}

func TestEntryHandler_ValidationError(t *testing.T) {
	app, _ := makeApp(false)

	res, body := do(t, app, "POST", "/api/entries", `{"name":"A","email":"ann@yahoo.com","phone":"123","hobbies":[],"place":"","gender":"male"}`)
	require.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	got := decode[presenter.ValidationErrorResponse](t, body)
	assert.Equal(t, "Validation error", got.Message)
	assert.Equal(t, []string{
		"Name must be at least 2 characters",
		"Please provide a valid Gmail address",
		"Phone number must be 10 digits",
		"At least one hobby is required",
		"Place is required",
		"Gender must be either Male, Female, or Other",
	}, got.Errors)
}

func TestEntryHandler_DuplicateEmail(t *testing.T) {
	app, _ := makeApp(false)

	res, _ := do(t, app, "POST", "/api/entries", validBody)
	require.Equal(t, fiber.StatusCreated, res.StatusCode)

	dup := strings.Replace(validBody, "ann@gmail.com", "ANN@gmail.com", 1)
	res, body := do(t, app, "POST", "/api/entries", dup)
	require.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Email already exists", decode[presenter.MessageResponse](t, body).Message)
}

func TestEntryHandler_InvalidBody(t *testing.T) {
	app, _ := makeApp(false)

	res, body := do(t, app, "POST", "/api/entries", `{"name":`)
	require.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Invalid request body", decode[presenter.MessageResponse](t, body).Message)
}

func TestEntryHandler_ListEnvelope(t *testing.T) {
	app, svc := makeApp(false)
	hobbies := make([][]string, 25)
	for i := range hobbies {
		hobbies[i] = []string{"Coding"}
	}
	seedEntries(t, svc, hobbies...)

	tests := []struct {
		query     string
		wantPage  int
		wantLimit int
		wantLen   int
	}{
		{"", 1, 10, 10},
		{"?page=3&limit=10", 3, 10, 5},
		{"?page=4&limit=10", 4, 10, 0},
		{"?page=abc&limit=-1", 1, 10, 10},
		{"?limit=1000", 1, 100, 25},
	}
	for _, tt := range tests {
		res, body := do(t, app, "GET", "/api/entries"+tt.query, "")
		require.Equal(t, fiber.StatusOK, res.StatusCode, tt.query)
		got := decode[presenter.ListResponse](t, body)
		assert.Equal(t, 25, got.Total, tt.query)
		assert.Equal(t, tt.wantPage, got.Page, tt.query)
		assert.Equal(t, tt.wantLimit, got.Limit, tt.query)
		assert.Len(t, got.Data, tt.wantLen, tt.query)
	}

	// an empty page still serializes data as an array
	_, body := do(t, app, "GET", "/api/entries?page=9", "")
	assert.Contains(t, string(body), `"data":[]`)
}

func TestEntryHandler_ListHugePage(t *testing.T) {
	app, svc := makeApp(false)
	seedEntries(t, svc, []string{"Reading"}, []string{"Coding"}, []string{"Music"})

	for _, page := range []string{"9223372036854775807", "1844674407370955162", "922337203685477581"} {
		t.Run(page, func(t *testing.T) {
			res, body := do(t, app, "GET", "/api/entries?page="+page+"&limit=10", "")
			require.Equal(t, fiber.StatusOK, res.StatusCode, string(body))
			assert.Contains(t, string(body), `"data":[]`)
			got := decode[presenter.ListResponse](t, body)
			assert.Equal(t, 3, got.Total)
			assert.Equal(t, 10, got.Limit)
			assert.Empty(t, got.Data)
		})
	}
}

func TestEntryHandler_ListSortAndFilter(t *testing.T) {
	app, svc := makeApp(false)
	seedEntries(t, svc, []string{"Reading"}, []string{"Coding", "Reading"}, []string{"Music"})

	_, body := do(t, app, "GET", "/api/entries?sortField=name&sortOrder=desc", "")
	got := decode[presenter.ListResponse](t, body)
	require.Len(t, got.Data, 3)
	assert.Equal(t, "Person 02", got.Data[0].Name)
	assert.Equal(t, "Person 00", got.Data[2].Name)

	_, body = do(t, app, "GET", "/api/entries?name=PERSON%2001", "")
	got = decode[presenter.ListResponse](t, body)
	require.Equal(t, 1, got.Total)
	assert.Equal(t, "Person 01", got.Data[0].Name)

	_, body = do(t, app, "GET", "/api/entries?gender=Male", "")
	assert.Equal(t, 0, decode[presenter.ListResponse](t, body).Total)
}

func TestEntryHandler_ListHobbyEncodings(t *testing.T) {
	app, svc := makeApp(false)
	seedEntries(t, svc, []string{"Reading"}, []string{"Coding", "Reading"}, []string{"Music"}, []string{"Cooking"})

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"single value", "hobbies=Reading", 2},
		{"repeated", "hobbies=Reading&hobbies=Music", 3},
		{"bracketed", "hobbies%5B%5D=Music&hobbies%5B%5D=Cooking", 2},
		{"json array", "hobbies=" + "%5B%22Music%22%2C%22Reading%22%5D", 3},
		{"empty json array", "hobbies=%5B%5D", 4},
		{"malformed is ignored", "hobbies=%5Bnot-json", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, body := do(t, app, "GET", "/api/entries?"+tt.query, "")
			require.Equal(t, fiber.StatusOK, res.StatusCode)
			assert.Equal(t, tt.want, decode[presenter.ListResponse](t, body).Total)
		})
	}
}

func TestEntryHandler_StrictFiltersRejectMalformed(t *testing.T) {
	app, _ := makeApp(true)

	res, body := do(t, app, "GET", "/api/entries?hobbies=%5Bnot-json", "")
	require.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	got := decode[presenter.ValidationErrorResponse](t, body)
	assert.Equal(t, "Validation error", got.Message)
	assert.Len(t, got.Errors, 1)

	res, _ = do(t, app, "GET", "/api/entries?hobbies=Reading", "")
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestParseHobbies(t *testing.T) {
	tests := []struct {
		in     []string
		want   []string
		wantOK bool
	}{
		{nil, nil, true},
		{[]string{"Reading"}, []string{"Reading"}, true},
		{[]string{" ", "Music"}, []string{"Music"}, true},
		{[]string{`["Reading","Coding"]`}, []string{"Reading", "Coding"}, true},
		{[]string{`["Reading"]`, "Music"}, []string{"Reading", "Music"}, true},
		{[]string{`[1,2]`}, nil, false},
		{[]string{`[Reading`}, nil, false},
	}
	for _, tt := range tests {
		got, ok := parseHobbies(tt.in)
		assert.Equal(t, tt.wantOK, ok, "parseHobbies(%q)", tt.in)
		assert.Equal(t, strings.Join(tt.want, ","), strings.Join(got, ","), "parseHobbies(%q)", tt.in)
	}
}

type failingUsecase struct {
	usecase.EntryUsecase
	err error
}

func (f failingUsecase) GetByID(context.Context, uuid.UUID) (*entity.Entry, error) {
	return nil, f.err
}

func (f failingUsecase) Ping(context.Context) error { return f.err }

func TestEntryHandler_UnavailableStore(t *testing.T) {
	h := NewEntryHandler(failingUsecase{err: fmt.Errorf("get entry: %w", entity.ErrUnavailable)}, presenter.NewEntryPresenter(), false)
	app := fiber.New()
	h.RegisterRoutes(app.Group("/api/entries"))
	app.Get("/health", h.Health)

	res, _ := do(t, app, "GET", "/api/entries/"+uuid.NewString(), "")
	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)

	res, body := do(t, app, "GET", "/health", "")
	require.Equal(t, fiber.StatusServiceUnavailable, res.StatusCode)
	assert.Equal(t, "unavailable", decode[presenter.HealthResponse](t, body).Status)
}
