// Package bulk applies uniform mutations to the selected records of a collection.
package bulk

import (
	"fmt"
	"maps"

	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/domain/view/selection"
)

// Update is a validated field -> value mutation applied to every selected record.
type Update struct {
	fields map[string]any
}

// NewUpdate validates and creates an Update.
// At least one field must be provided and the identifier field may not be touched.
func NewUpdate(fields map[string]any, idField string) (Update, error) {
	if len(fields) == 0 {
		return Update{}, fmt.Errorf("at least one field must be provided")
	}
	if _, ok := fields[idField]; ok {
		return Update{}, fmt.Errorf("identifier field %q cannot be updated", idField)
	}
	for k := range fields {
		if k == "" {
			return Update{}, fmt.Errorf("field name is required")
		}
	}
	return Update{fields: maps.Clone(fields)}, nil
}

// Fields returns a copy of the field updates.
func (u Update) Fields() map[string]any { return maps.Clone(u.fields) }

// Apply returns a new collection where every selected record is replaced by a
// new record with the update merged in. Unselected records are passed through
// as the same map values. affected is the number of records replaced.
func Apply(records []record.Record, sel selection.Set, idField string, u Update) ([]record.Record, int) {
	out := make([]record.Record, len(records))
	affected := 0
	for i, r := range records {
		if id, ok := r.ID(idField); ok && sel.Contains(id) {
			out[i] = r.Merge(u.fields)
			affected++
			continue
		}
		out[i] = r
	}
	return out, affected
}

// Delete returns a new collection without the selected records, and the
// identifiers that were removed in collection order.
func Delete(records []record.Record, sel selection.Set, idField string) ([]record.Record, []record.ID) {
	out := make([]record.Record, 0, len(records))
	var removed []record.ID
	for _, r := range records {
		if id, ok := r.ID(idField); ok && sel.Contains(id) {
			removed = append(removed, id)
			continue
		}
		out = append(out, r)
	}
	return out, removed
}

// Pick returns the selected records in collection order.
func Pick(records []record.Record, sel selection.Set, idField string) []record.Record {
	out := make([]record.Record, 0, sel.Len())
	for _, r := range records {
		if id, ok := r.ID(idField); ok && sel.Contains(id) {
			out = append(out, r)
		}
	}
	return out
}
