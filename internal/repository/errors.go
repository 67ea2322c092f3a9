package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Store errors.
var (
	ErrNotFound            = errors.New("record not found")
	ErrConstraintViolation = errors.New("constraint violation")

	ErrDuplicateAdmissionNumber = fmt.Errorf("%w: student with this admission number already exists", ErrConstraintViolation)
	ErrDuplicateUsername        = fmt.Errorf("%w: username already exists", ErrConstraintViolation)
)

// isUniqueViolation checks if the error is a PostgreSQL unique violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
