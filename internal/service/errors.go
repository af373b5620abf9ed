package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Domain error taxonomy. All three are raised from inside the mutating
// transaction, which is then rolled back in full — callers never observe a
// partially applied write. Handlers map them onto HTTP status codes.
var (
	// ErrNotFound: a referenced row is absent.
	ErrNotFound = errors.New("record not found")
	// ErrWouldViolateInvariant: the deletion would drive stock negative.
	ErrWouldViolateInvariant = errors.New("operation would drive stock negative")
	// ErrConstraintViolation: uniqueness or range check failure.
	ErrConstraintViolation = errors.New("constraint violation")
)

// translateDBError maps gorm/driver errors onto the domain taxonomy.
// Postgres constraint failures are matched by SQLSTATE in the driver message
// (pgx formats errors as "... (SQLSTATE 23505)").
func translateDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "SQLSTATE 23505"), strings.Contains(msg, "duplicate key"):
		return fmt.Errorf("%w: duplicate value", ErrConstraintViolation)
	case strings.Contains(msg, "SQLSTATE 23514"), strings.Contains(msg, "check constraint"):
		return fmt.Errorf("%w: value out of range", ErrConstraintViolation)
	case strings.Contains(msg, "SQLSTATE 23503"), strings.Contains(msg, "foreign key"):
		return fmt.Errorf("%w: row is referenced by other records", ErrConstraintViolation)
	}
	return err
}
