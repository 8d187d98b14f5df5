package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals a missing record.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate record identifier.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidSchema signals an inconsistent field declaration set.
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrInvalidConfiguration signals an unusable view configuration (page size, sort direction).
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrUnknownFieldReference signals a filter or sort key absent from the schema (strict mode only).
	ErrUnknownFieldReference = errors.New("unknown field reference")
	// ErrValidationFailed signals an entity that did not pass form validation.
	ErrValidationFailed = errors.New("validation failed")
	// ErrInvalidBulkAction signals an unsupported bulk action or one issued without a selection.
	ErrInvalidBulkAction = errors.New("invalid bulk action")

	// ErrRevisionConflict signals an optimistic locking conflict.
	ErrRevisionConflict = errors.New("revision conflict")
)

// Reference kinds reported by UnknownFieldError.
const (
	ReferenceFilter = "filter"
	ReferenceSort   = "sort"
)

// UnknownFieldError wraps ErrUnknownFieldReference with the offending keys.
type UnknownFieldError struct {
	Kind  string
	Names []string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrUnknownFieldReference.Error(), e.Kind, strings.Join(e.Names, ", "))
}

func (e *UnknownFieldError) Unwrap() error { return ErrUnknownFieldReference }

// NewUnknownField creates an unknown field reference error.
func NewUnknownField(kind string, names ...string) error {
	return &UnknownFieldError{Kind: kind, Names: names}
}

// RevisionConflictError wraps ErrRevisionConflict with the current resource revision.
type RevisionConflictError struct {
	CurrentRevision int
}

func (e *RevisionConflictError) Error() string {
	return fmt.Sprintf("%s: current revision is %d", ErrRevisionConflict.Error(), e.CurrentRevision)
}

func (e *RevisionConflictError) Unwrap() error { return ErrRevisionConflict }

// NewRevisionConflict creates a revision conflict error.
func NewRevisionConflict(currentRevision int) error {
	return &RevisionConflictError{CurrentRevision: currentRevision}
}
