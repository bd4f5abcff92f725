package homgroups

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is wrapped by every *InvalidInputError.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInconsistentRelation is wrapped by every *InconsistentRelationError.
	ErrInconsistentRelation = errors.New("inconsistent difference relation")
)

// InvalidInputError reports items or relation data that cannot be grouped:
// an empty or duplicated item list, a nil relation, or a relation whose shape
// does not match the items.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e == nil || e.Reason == "" {
		return ErrInvalidInput.Error()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// InconsistentRelationError reports a relation that is not symmetric or that
// marks an item as different from itself.
type InconsistentRelationError struct {
	Reason string
}

func (e *InconsistentRelationError) Error() string {
	if e == nil || e.Reason == "" {
		return ErrInconsistentRelation.Error()
	}
	return fmt.Sprintf("%s: %s", ErrInconsistentRelation.Error(), e.Reason)
}

func (e *InconsistentRelationError) Unwrap() error { return ErrInconsistentRelation }

func invalidf(format string, args ...any) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

func inconsistentf(format string, args ...any) error {
	return &InconsistentRelationError{Reason: fmt.Sprintf(format, args...)}
}
