package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"teslo-shop/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	notNullViolationCode    = "23502"
	checkViolationCode      = "23514"
)

// mapError classifies a driver error into the domain error taxonomy.
// Anything it does not recognize is wrapped as domain.ErrInternal with the cause kept.
func mapError(err error, entity string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, entity)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %s", domain.ErrDuplicateKey, pgErr.Detail)
		case foreignKeyViolationCode:
			return fmt.Errorf("%w: %s", domain.ErrForeignKeyViolation, pgErr.Detail)
		case notNullViolationCode:
			return fmt.Errorf("%w: %s is required", domain.ErrValidationFailed, pgErr.ColumnName)
		case checkViolationCode:
			return fmt.Errorf("%w: %s violates %s", domain.ErrValidationFailed, entity, pgErr.ConstraintName)
		}
	}

	return fmt.Errorf("%w: %s: %w", domain.ErrInternal, entity, err)
}

func checkRowsAffected(result sql.Result, entity string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return mapError(err, entity)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, entity)
	}
	return nil
}
