package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestUnknownFieldError_Unwrap(t *testing.T) {
	err := fmt.Errorf("apply view: %w", NewUnknownField(ReferenceFilter, "colour", "size"))

	if !errors.Is(err, ErrUnknownFieldReference) {
		t.Fatalf("errors.Is(ErrUnknownFieldReference) = false for %v", err)
	}

	var ufe *UnknownFieldError
	if !errors.As(err, &ufe) {
		t.Fatal("errors.As(*UnknownFieldError) = false")
	}
	if ufe.Kind != ReferenceFilter {
		t.Errorf("Kind = %q, want %q", ufe.Kind, ReferenceFilter)
	}
	if len(ufe.Names) != 2 {
		t.Errorf("Names = %v, want 2 entries", ufe.Names)
	}

	want := "unknown field reference: filter colour, size"
	if ufe.Error() != want {
		t.Errorf("Error() = %q, want %q", ufe.Error(), want)
	}
}

func TestRevisionConflictError_Unwrap(t *testing.T) {
	err := fmt.Errorf("bulk delete: %w", NewRevisionConflict(7))

	if !errors.Is(err, ErrRevisionConflict) {
		t.Fatal("errors.Is(ErrRevisionConflict) = false")
	}
	var rce *RevisionConflictError
	if !errors.As(err, &rce) {
		t.Fatal("errors.As(*RevisionConflictError) = false")
	}
	if rce.CurrentRevision != 7 {
		t.Errorf("CurrentRevision = %d, want 7", rce.CurrentRevision)
	}
}
