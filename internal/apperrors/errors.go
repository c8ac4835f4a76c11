// Package apperrors defines the error taxonomy shared across services.
// Business-rule failures are sentinel values callers test with errors.Is;
// storage failures wrap ErrInternal so handlers never leak driver details.
package apperrors

import (
	"errors"
	"fmt"
)

// DomainError carries a stable machine-readable code alongside the message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

var (
	ErrValidation = &DomainError{
		Code:    "VALIDATION_FAILED",
		Message: "validation failed",
	}
	ErrNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "resource not found",
	}
	ErrNotAuthorized = &DomainError{
		Code:    "NOT_AUTHORIZED",
		Message: "actor is not authorized for this action",
	}
	ErrAlreadyOpen = &DomainError{
		Code:    "ALREADY_OPEN",
		Message: "a verification record already exists for this item",
	}
	ErrInvalidTransition = &DomainError{
		Code:    "INVALID_TRANSITION",
		Message: "the record's current status does not allow this transition",
	}
	ErrConflict = &DomainError{
		Code:    "CONCURRENCY_CONFLICT",
		Message: "the record was modified by another actor, refresh and retry",
	}
	ErrInternal = &DomainError{
		Code:    "INTERNAL",
		Message: "internal error",
	}
)

// Validation returns ErrValidation wrapped with a concrete reason.
func Validation(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}

// Internal wraps a storage or infrastructure failure into ErrInternal,
// preserving the cause for logs while keeping the taxonomy closed.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

// IsBusiness reports whether err is an expected business-rule outcome
// rather than an infrastructure failure.
func IsBusiness(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrNotAuthorized) ||
		errors.Is(err, ErrAlreadyOpen) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrConflict)
}
