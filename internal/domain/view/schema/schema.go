// Package schema declares which record fields a data view may search, filter, and sort on.
package schema

import (
	"fmt"

	"github.com/kailas-cloud/wareflow/internal/domain"
	"github.com/kailas-cloud/wareflow/internal/domain/view/field"
)

// SearchKey is the reserved filter key for free-text search.
const SearchKey = "search"

// FilterKind is how a named filter constrains its target field.
type FilterKind string

// Filter kinds.
const (
	// Categorical requires exact equality with the target field.
	Categorical FilterKind = "categorical"
	NumericMin  FilterKind = "numeric_min"
	NumericMax  FilterKind = "numeric_max"
	DateFrom    FilterKind = "date_from"
	DateTo      FilterKind = "date_to"
)

// IsValid checks if the filter kind is supported.
func (k FilterKind) IsValid() bool {
	switch k {
	case Categorical, NumericMin, NumericMax, DateFrom, DateTo:
		return true
	}
	return false
}

// Filter binds a filter key to a declared field.
type Filter struct {
	key   string
	kind  FilterKind
	field string
}

// NewFilter validates and creates a Filter declaration.
func NewFilter(key string, kind FilterKind, fieldName string) (Filter, error) {
	if key == "" {
		return Filter{}, fmt.Errorf("filter key is required")
	}
	if key == SearchKey {
		return Filter{}, fmt.Errorf("filter key %q is reserved", SearchKey)
	}
	if !kind.IsValid() {
		return Filter{}, fmt.Errorf("invalid filter kind %q for %q", kind, key)
	}
	if fieldName == "" {
		return Filter{}, fmt.Errorf("target field is required for filter %q", key)
	}
	return Filter{key: key, kind: kind, field: fieldName}, nil
}

// Key returns the filter key as it appears in a filter config.
func (f Filter) Key() string { return f.key }

// Kind returns the filter kind.
func (f Filter) Kind() FilterKind { return f.kind }

// Field returns the target field name.
func (f Filter) Field() string { return f.field }

// Schema is the field declaration set for one entity type (immutable value object).
type Schema struct {
	name       string
	idField    string
	fields     []field.Field
	byName     map[string]field.Field
	searchable []string
	filters    []Filter
	byKey      map[string]Filter
}

// New validates and creates a Schema.
// Every searchable field and filter target must be declared; numeric and date bounds
// must target fields of the matching kind.
func New(name, idField string, fields []field.Field, searchable []string, filters []Filter) (Schema, error) {
	if name == "" {
		return Schema{}, fmt.Errorf("schema name is required: %w", domain.ErrInvalidSchema)
	}
	if idField == "" {
		return Schema{}, fmt.Errorf("schema %s: id field is required: %w", name, domain.ErrInvalidSchema)
	}

	byName := make(map[string]field.Field, len(fields))
	for _, f := range fields {
		if _, dup := byName[f.Name()]; dup {
			return Schema{}, fmt.Errorf("schema %s: duplicate field %q: %w", name, f.Name(), domain.ErrInvalidSchema)
		}
		byName[f.Name()] = f
	}

	for _, s := range searchable {
		if _, ok := byName[s]; !ok {
			return Schema{}, fmt.Errorf("schema %s: searchable field %q not declared: %w",
				name, s, domain.ErrInvalidSchema)
		}
	}

	byKey := make(map[string]Filter, len(filters))
	for _, flt := range filters {
		if _, dup := byKey[flt.Key()]; dup {
			return Schema{}, fmt.Errorf("schema %s: duplicate filter %q: %w", name, flt.Key(), domain.ErrInvalidSchema)
		}
		target, ok := byName[flt.Field()]
		if !ok {
			return Schema{}, fmt.Errorf("schema %s: filter %q targets undeclared field %q: %w",
				name, flt.Key(), flt.Field(), domain.ErrInvalidSchema)
		}
		if err := checkTarget(flt, target); err != nil {
			return Schema{}, fmt.Errorf("schema %s: %w: %w", name, err, domain.ErrInvalidSchema)
		}
		byKey[flt.Key()] = flt
	}

	return Schema{
		name:       name,
		idField:    idField,
		fields:     append([]field.Field(nil), fields...),
		byName:     byName,
		searchable: append([]string(nil), searchable...),
		filters:    append([]Filter(nil), filters...),
		byKey:      byKey,
	}, nil
}

// MustNew is New for static declarations; it panics on invalid input.
func MustNew(name, idField string, fields []field.Field, searchable []string, filters []Filter) Schema {
	s, err := New(name, idField, fields, searchable, filters)
	if err != nil {
		panic(err)
	}
	return s
}

func checkTarget(flt Filter, target field.Field) error {
	switch flt.Kind() {
	case NumericMin, NumericMax:
		if target.Kind() != field.Numeric {
			return fmt.Errorf("filter %q needs a numeric field, %q is %s", flt.Key(), target.Name(), target.Kind())
		}
	case DateFrom, DateTo:
		if target.Kind() != field.Date {
			return fmt.Errorf("filter %q needs a date field, %q is %s", flt.Key(), target.Name(), target.Kind())
		}
	}
	return nil
}

// Name returns the schema name (used for logs and metrics).
func (s Schema) Name() string { return s.name }

// IDField returns the identifier field name.
func (s Schema) IDField() string { return s.idField }

// Fields returns the declared fields in declaration order.
func (s Schema) Fields() []field.Field { return s.fields }

// Field looks up a declared field.
func (s Schema) Field(name string) (field.Field, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// Searchable returns the fields covered by the search filter.
func (s Schema) Searchable() []string { return s.searchable }

// Filters returns the declared filters in declaration order.
func (s Schema) Filters() []Filter { return s.filters }

// Filter looks up a declared filter by key.
func (s Schema) Filter(key string) (Filter, bool) {
	f, ok := s.byKey[key]
	return f, ok
}
