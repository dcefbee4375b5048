package internal

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrorTypeConnection ErrorType = "CONNECTION_FAILURE"
	ErrorTypeConstraint ErrorType = "CONSTRAINT_VIOLATION"
	ErrorTypeUnique     ErrorType = "UNIQUE_VIOLATION"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeMigration  ErrorType = "MIGRATION_FAILURE"
	ErrorTypeRowDecode  ErrorType = "ROW_DECODE_ERROR"
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeInternal   ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidAmount       ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidDate         ErrorCode = "INVALID_DATE"
	ErrCodeInvalidCategory     ErrorCode = "INVALID_CATEGORY"
	ErrCodeInvalidCategoryName ErrorCode = "INVALID_CATEGORY_NAME"
	ErrCodeInvalidCategoryType ErrorCode = "INVALID_CATEGORY_TYPE"

	ErrCodeDuplicateKey    ErrorCode = "DUPLICATE_KEY"
	ErrCodeForeignKey      ErrorCode = "FOREIGN_KEY_FAILED"
	ErrCodeCheckFailed     ErrorCode = "CHECK_FAILED"
	ErrCodeNotNullFailed   ErrorCode = "NOT_NULL_FAILED"
	ErrCodeConstraint      ErrorCode = "CONSTRAINT_FAILED"
	ErrCodeCategoryInUse   ErrorCode = "CATEGORY_IN_USE"
	ErrCodeEntryNotFound   ErrorCode = "ENTRY_NOT_FOUND"
	ErrCodeCategoryMissing ErrorCode = "CATEGORY_NOT_FOUND"

	ErrCodeStoreOpenFailed  ErrorCode = "STORE_OPEN_FAILED"
	ErrCodeStoreClosed      ErrorCode = "STORE_CLOSED"
	ErrCodeStoreAlreadyOpen ErrorCode = "STORE_ALREADY_OPEN"
	ErrCodeMigrationFailed  ErrorCode = "MIGRATION_FAILED"
	ErrCodeRowDecodeFailed  ErrorCode = "ROW_DECODE_FAILED"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

type AppError struct {
	Type    ErrorType
	Code    ErrorCode
	Message string
	Details interface{}
	Cause   error
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches on type and code so freshly built errors compare equal to the
// package level sentinels.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string
	Message string
	Code    string
}

type ValidationErrors struct {
	Errors []ValidationError
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: "Validation failed",
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Code:    code,
		Message: message,
	}
}

func NewConstraintViolationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeConstraint,
		Code:    code,
		Message: message,
	}
}

func NewUniqueViolationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeUnique,
		Code:    code,
		Message: message,
	}
}

func NewConnectionError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeConnection,
		Code:    ErrCodeStoreOpenFailed,
		Message: message,
		Cause:   cause,
	}
}

func NewMigrationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeMigration,
		Code:    ErrCodeMigrationFailed,
		Message: message,
		Cause:   cause,
	}
}

func NewRowDecodeError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeRowDecode,
		Code:    ErrCodeRowDecodeFailed,
		Message: message,
		Cause:   cause,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Code:    ErrCodeInternal,
		Message: message,
		Cause:   cause,
	}
}

var (
	ErrStoreClosed      = &AppError{Type: ErrorTypeConnection, Code: ErrCodeStoreClosed, Message: "ledger store is not open"}
	ErrStoreAlreadyOpen = &AppError{Type: ErrorTypeConnection, Code: ErrCodeStoreAlreadyOpen, Message: "ledger store is already open"}
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsType(err error, errType ErrorType) bool {
	appErr, ok := IsAppError(err)
	return ok && appErr.Type == errType
}

// IsConstraintViolation reports true for unique violations as well, since a
// duplicate key is a kind of constraint failure.
func IsConstraintViolation(err error) bool {
	return IsType(err, ErrorTypeConstraint) || IsType(err, ErrorTypeUnique)
}

func IsUniqueViolation(err error) bool {
	return IsType(err, ErrorTypeUnique)
}
