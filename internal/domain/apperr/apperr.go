// Package apperr defines the error kinds shared by every domain package.
// Domain errors wrap one of the kind sentinels so callers can branch with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation: malformed or out-of-domain input, rejected before any state change.
	ErrValidation = errors.New("validation error")
	// ErrPrecondition: entity is not in the state the operation requires.
	ErrPrecondition = errors.New("precondition failed")
	// ErrNotFound: referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConsistency: a cross-entity invariant is violated. Must never be repaired silently.
	ErrConsistency = errors.New("consistency violation")
	// ErrForbidden: the acting staff member lacks the capability.
	ErrForbidden = errors.New("forbidden")
)

// Kind is the coarse classification used by the transport layer.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindPrecondition Kind = "precondition"
	KindNotFound     Kind = "not_found"
	KindConsistency  Kind = "consistency"
	KindForbidden    Kind = "forbidden"
	KindInternal     Kind = "internal"
)

func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func Precondition(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
}

func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func Consistency(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConsistency, fmt.Sprintf(format, args...))
}

func Forbidden(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

// KindOf reports the kind of err; anything unclassified is internal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrPrecondition):
		return KindPrecondition
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConsistency):
		return KindConsistency
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	default:
		return KindInternal
	}
}
