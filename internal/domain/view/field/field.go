package field

import "fmt"

// Kind is the comparison kind of a field.
type Kind string

// Field kind constants.
const (
	// String compares case-insensitively.
	String  Kind = "string"
	Numeric Kind = "numeric"
	// Date compares as calendar instants.
	Date Kind = "date"
)

// MaxNameLength is the maximum field name length.
const MaxNameLength = 64

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == String || k == Numeric || k == Date
}

// Field is an immutable value object describing a declared record field.
type Field struct {
	name string
	kind Kind
}

// New validates and creates a Field.
// Name must be non-empty and at most 64 chars. Kind must be string, numeric, or date.
func New(name string, kind Kind) (Field, error) {
	if name == "" {
		return Field{}, fmt.Errorf("field name is required")
	}
	if len(name) > MaxNameLength {
		return Field{}, fmt.Errorf("field name %q too long (max %d)", name, MaxNameLength)
	}
	if !kind.IsValid() {
		return Field{}, fmt.Errorf("invalid field kind %q for %q", kind, name)
	}
	return Field{name: name, kind: kind}, nil
}

// MustNew is New for static declarations; it panics on invalid input.
func MustNew(name string, kind Kind) Field {
	f, err := New(name, kind)
	if err != nil {
		panic(err)
	}
	return f
}

// Reconstruct creates a Field without validation.
func Reconstruct(name string, kind Kind) Field {
	return Field{name: name, kind: kind}
}

// Name returns the field name.
func (f Field) Name() string { return f.name }

// Kind returns the field's comparison kind.
func (f Field) Kind() Kind { return f.kind }
