package errs

import (
	"errors"
	"strings"
)

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// InvalidAmountError rejects a non-positive amount or one that violates an
// operation precondition (for example paying more than a debt's remainder).
type InvalidAmountError struct {
	ErrorMessage
}

// ConflictError reports a concurrent modification. The whole operation must be
// retried from a fresh read.
type ConflictError struct {
	ErrorMessage
}

// PartialFailureError reports a multi-step operation where some steps did not
// complete. Failed lists the identifiers of the steps that failed.
type PartialFailureError struct {
	ErrorMessage
	Operation string
	Failed    []string
}

type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewInvalidAmountError(message string) *InvalidAmountError {
	return &InvalidAmountError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewPartialFailureError(operation string, failed []string) *PartialFailureError {
	return &PartialFailureError{
		ErrorMessage: ErrorMessage{Message: operation + " failed for: " + strings.Join(failed, ", ")},
		Operation:    operation,
		Failed:       failed,
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}
