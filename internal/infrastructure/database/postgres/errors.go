package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wichananm65/entries-backend/internal/domain/entity"
)

// mapError converts database/sql and pgconn errors to domain errors.
// Anything unrecognised is treated as the store being unavailable.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, entity.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w", op, entity.ErrDuplicateEmail)
		case "23514": // check_violation
			return fmt.Errorf("%s: %w: %s", op, entity.ErrValidation, pgErr.ConstraintName)
		}
	}

	return fmt.Errorf("%s: %w: %w", op, entity.ErrUnavailable, err)
}
