package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate is returned when an insert trips a unique constraint.
// Pre-checks in the service layer catch most duplicates, but the
// constraint is the authority under concurrent writes.
var ErrDuplicate = errors.New("duplicate record")

// ErrDuplicateEmail narrows ErrDuplicate for the users table, which
// carries unique constraints on both username and email.
var ErrDuplicateEmail = errors.New("duplicate email")

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// isUniqueViolationOn reports whether err is a unique violation on a
// constraint whose name mentions column.
func isUniqueViolationOn(err error, column string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == uniqueViolation &&
		strings.Contains(pgErr.ConstraintName, column)
}
