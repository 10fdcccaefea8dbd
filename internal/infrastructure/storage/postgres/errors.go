package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"mandiflow/internal/core/apperror"
)

// isNoRows reports whether err is the pgx no-rows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// translateError maps PostgreSQL constraint violations onto AppError codes.
// Other errors pass through unchanged.
func translateError(err error, entity string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return apperror.NewDuplicate(entity, pgErr.ConstraintName, pgErr.Detail)
		case "23503": // foreign_key_violation
			return apperror.NewValidation("referenced record does not exist").
				WithDetail("entity", entity).
				WithDetail("constraint", pgErr.ConstraintName)
		}
	}
	return err
}
