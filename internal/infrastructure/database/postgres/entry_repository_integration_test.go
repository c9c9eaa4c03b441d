//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/wichananm65/entries-backend/internal/domain/entity"
	"github.com/wichananm65/entries-backend/internal/infrastructure/config"
)

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// setupTestDB starts a shared PostgreSQL container once per test run and
// returns a connection with an empty entries table.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	once.Do(func() {
		sharedDSN, initErr = startContainer()
	})
	require.NoError(t, initErr, "failed to start postgres container")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := Open(ctx, config.DatabaseConfig{URL: sharedDSN, MaxOpenConns: 5, MaxIdleConns: 1, ConnMaxLifetime: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, EnsureSchema(ctx, db))
	_, err = db.ExecContext(ctx, `TRUNCATE entries`)
	require.NoError(t, err)

	return db
}

func startContainer() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "entries",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	return fmt.Sprintf("postgres://testuser:testpass@%s:%s/entries?sslmode=disable", host, port.Port()), nil
}

func fieldsFor(name, email string, gender entity.Gender, hobbies ...string) entity.Fields {
	return entity.Fields{
		Name:    name,
		Email:   email,
		Phone:   "0123456789",
		Hobbies: hobbies,
		Place:   "Chiang Mai",
		Gender:  gender,
	}
}

func TestIntegration_CRUDAndUniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewEntryRepository(setupTestDB(t))

	created, err := repo.Create(ctx, fieldsFor("Ann", "ann@gmail.com", entity.GenderFemale, "Reading"))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Fields(), got.Fields())

	_, err = repo.Create(ctx, fieldsFor("Other Ann", "ann@gmail.com", entity.GenderOther, "Music"))
	assert.ErrorIs(t, err, entity.ErrDuplicateEmail)

	updated, err := repo.Update(ctx, created.ID, fieldsFor("Annie", "annie@gmail.com", entity.GenderFemale, "Cooking"))
	require.NoError(t, err)
	assert.Equal(t, "Annie", updated.Name)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))

	_, err = repo.Update(ctx, uuid.New(), fieldsFor("Ghost", "ghost@gmail.com", entity.GenderOther, "Music"))
	assert.ErrorIs(t, err, entity.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), entity.ErrNotFound)
}

func TestIntegration_QueryFiltersAndPaging(t *testing.T) {
	ctx := context.Background()
	repo := NewEntryRepository(setupTestDB(t))

	for i := 0; i < 25; i++ {
		hobbies := []string{"Coding"}
		if i%5 == 0 {
			hobbies = append(hobbies, "Reading")
		}
		_, err := repo.Create(ctx, fieldsFor(fmt.Sprintf("Person %02d", i), fmt.Sprintf("p%02d@gmail.com", i), entity.GenderOther, hobbies...))
		require.NoError(t, err)
	}

	page := func(p int) entity.Query {
		q := entity.Query{Page: p, Limit: 10}
		q.Normalize(10, 100)
		return q
	}

	total, data, err := repo.Query(ctx, page(1))
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Len(t, data, 10)
	assert.Equal(t, "Person 00", data[0].Name)

	_, data, err = repo.Query(ctx, page(3))
	require.NoError(t, err)
	assert.Len(t, data, 5)

	total, data, err = repo.Query(ctx, page(4))
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Empty(t, data)

	q := page(1)
	q.Filter.Hobbies = []string{"Reading", "Gardening"}
	total, data, err = repo.Query(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	for _, e := range data {
		assert.Contains(t, e.Hobbies, "Reading")
	}

	q = page(1)
	q.Filter.Email = "P1"
	q.Sort = entity.Sort{Field: entity.SortByEmail, Order: entity.SortDesc}
	total, data, err = repo.Query(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 10, total)
	assert.Equal(t, "p19@gmail.com", data[0].Email)
}
