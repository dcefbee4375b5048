package internal

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// FromDBError classifies a driver error from a write or query into the
// ledger error taxonomy. Constraint failures keep the driver error as cause.
func FromDBError(err error, message string) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return NewUniqueViolationError(message, ErrCodeDuplicateKey).WithCause(err)
		case sqlite3.ErrConstraintForeignKey:
			return NewConstraintViolationError(message, ErrCodeForeignKey).WithCause(err)
		case sqlite3.ErrConstraintCheck:
			return NewConstraintViolationError(message, ErrCodeCheckFailed).WithCause(err)
		case sqlite3.ErrConstraintNotNull:
			return NewConstraintViolationError(message, ErrCodeNotNullFailed).WithCause(err)
		}
		if sqliteErr.Code == sqlite3.ErrConstraint {
			return NewConstraintViolationError(message, ErrCodeConstraint).WithCause(err)
		}
	}

	return NewInternalError(message, err)
}
