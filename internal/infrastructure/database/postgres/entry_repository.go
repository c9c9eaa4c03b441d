package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/wichananm65/entries-backend/internal/domain/entity"
	"github.com/wichananm65/entries-backend/internal/domain/repository"
)

const entriesTable = "entries"

var entryColumns = []string{
	"id", "name", "email", "phone", "hobbies", "place", "gender", "created_at", "updated_at",
}

var (
	psql      = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	returning = "RETURNING " + strings.Join(entryColumns, ", ")
)

// EntryRepository is a PostgreSQL implementation of EntryRepository.
// Email uniqueness is enforced by the entries_email_key index.
type EntryRepository struct {
	db  *sql.DB
	now func() time.Time
}

var _ repository.EntryRepository = (*EntryRepository)(nil)

func NewEntryRepository(db *sql.DB) *EntryRepository {
	return &EntryRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *EntryRepository) Create(ctx context.Context, fields entity.Fields) (*entity.Entry, error) {
	now := r.now()
	query, args, err := psql.Insert(entriesTable).
		Columns(entryColumns...).
		Values(
			uuid.New(),
			fields.Name,
			fields.Email,
			fields.Phone,
			textArray(fields.Hobbies),
			fields.Place,
			string(fields.Gender),
			now,
			now,
		).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, mapError(err, "create entry")
	}

	e, err := scanEntry(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "create entry")
	}
	return &e, nil
}

func (r *EntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Entry, error) {
	query, args, err := psql.Select(entryColumns...).
		From(entriesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, mapError(err, "get entry "+id.String())
	}

	e, err := scanEntry(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "get entry "+id.String())
	}
	return &e, nil
}

func (r *EntryRepository) Update(ctx context.Context, id uuid.UUID, fields entity.Fields) (*entity.Entry, error) {
	query, args, err := psql.Update(entriesTable).
		Set("name", fields.Name).
		Set("email", fields.Email).
		Set("phone", fields.Phone).
		Set("hobbies", textArray(fields.Hobbies)).
		Set("place", fields.Place).
		Set("gender", string(fields.Gender)).
		Set("updated_at", r.now()).
		Where(sq.Eq{"id": id}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, mapError(err, "update entry "+id.String())
	}

	e, err := scanEntry(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "update entry "+id.String())
	}
	return &e, nil
}

func (r *EntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete(entriesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return mapError(err, "delete entry "+id.String())
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err, "delete entry "+id.String())
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return mapError(err, "delete entry "+id.String())
	}
	if affected == 0 {
		return mapError(sql.ErrNoRows, "delete entry "+id.String())
	}
	return nil
}

// Query counts the matches first and only fetches rows when the requested
// page overlaps them.
func (r *EntryRepository) Query(ctx context.Context, q entity.Query) (int, []entity.Entry, error) {
	countQuery, countArgs, err := applyFilter(psql.Select("COUNT(*)").From(entriesTable), q.Filter).ToSql()
	if err != nil {
		return 0, nil, mapError(err, "count entries")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return 0, nil, mapError(err, "count entries")
	}
	offset := q.Offset()
	if offset < 0 || offset >= total {
		return total, []entity.Entry{}, nil
	}

	pageQuery, pageArgs, err := applyFilter(psql.Select(entryColumns...).From(entriesTable), q.Filter).
		OrderBy(orderBy(q.Sort)...).
		Limit(uint64(q.Limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return 0, nil, mapError(err, "list entries")
	}

	rows, err := r.db.QueryContext(ctx, pageQuery, pageArgs...)
	if err != nil {
		return 0, nil, mapError(err, "list entries")
	}
	defer rows.Close()

	out := make([]entity.Entry, 0, q.Limit)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return 0, nil, mapError(err, "list entries")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, mapError(err, "list entries")
	}

	return total, out, nil
}

func (r *EntryRepository) Ping(ctx context.Context) error {
	return mapError(r.db.PingContext(ctx), "ping")
}

func textArray(values []string) sq.Sqlizer {
	return sq.Expr("?::text[]", pq.Array(values))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(scanner rowScanner) (entity.Entry, error) {
	var (
		e       entity.Entry
		hobbies pq.StringArray
		gender  string
	)
	if err := scanner.Scan(
		&e.ID,
		&e.Name,
		&e.Email,
		&e.Phone,
		&hobbies,
		&e.Place,
		&gender,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return entity.Entry{}, err
	}

	e.Hobbies = []string(hobbies)
	if e.Hobbies == nil {
		e.Hobbies = []string{}
	}
	e.Gender = entity.Gender(gender)
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return e, nil
}
