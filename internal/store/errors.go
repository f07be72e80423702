package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound: lookup by an id that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConstraint: uniqueness or required-field violation.
	ErrConstraint = errors.New("constraint violation")
	// ErrReference: a foreign key that does not resolve, in either
	// direction (dangling reference on insert, still-referenced row on
	// delete).
	ErrReference = errors.New("reference error")
)

// wrap translates driver errors into the store's sentinel taxonomy.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23502", "23514": // unique, not null, check
			return fmt.Errorf("%w: %s", ErrConstraint, pgErr.ConstraintName)
		case "23503": // foreign key
			return fmt.Errorf("%w: %s", ErrReference, pgErr.ConstraintName)
		}
	}
	return err
}
