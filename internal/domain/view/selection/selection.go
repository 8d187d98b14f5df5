// Package selection tracks selected record identifiers independently of
// filtering, sorting, and paging.
package selection

import (
	"slices"

	"github.com/kailas-cloud/wareflow/internal/domain/record"
)

// Set is an immutable set of record identifiers. The zero value is empty.
// Every operation returns a new Set.
type Set struct {
	ids map[record.ID]struct{}
}

// Of creates a Set holding ids.
func Of(ids ...record.ID) Set {
	if len(ids) == 0 {
		return Set{}
	}
	m := make(map[record.ID]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			m[id] = struct{}{}
		}
	}
	return Set{ids: m}
}

// Len returns the number of selected identifiers.
func (s Set) Len() int { return len(s.ids) }

// IsEmpty reports whether nothing is selected.
func (s Set) IsEmpty() bool { return len(s.ids) == 0 }

// Contains reports whether id is selected.
func (s Set) Contains(id record.ID) bool {
	_, ok := s.ids[id]
	return ok
}

// IDs returns the selected identifiers in lexicographic order.
func (s Set) IDs() []record.ID {
	out := make([]record.ID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Equal reports whether both sets hold exactly the same identifiers.
func (s Set) Equal(o Set) bool {
	if len(s.ids) != len(o.ids) {
		return false
	}
	for id := range s.ids {
		if _, ok := o.ids[id]; !ok {
			return false
		}
	}
	return true
}

// Toggle adds id when absent and removes it when present.
func (s Set) Toggle(id record.ID) Set {
	return s.Select(id, !s.Contains(id))
}

// Select sets the membership of id explicitly.
func (s Set) Select(id record.ID, checked bool) Set {
	if id == "" || s.Contains(id) == checked {
		return s
	}
	next := s.clone()
	if checked {
		next.ids[id] = struct{}{}
	} else {
		delete(next.ids, id)
	}
	return next
}

// SelectAllVisible implements the single "select all on this page" control.
// When the selection already equals the visible ids it is cleared,
// otherwise it becomes exactly the visible ids.
func (s Set) SelectAllVisible(visible []record.ID) Set {
	target := Of(visible...)
	if s.Equal(target) {
		return Set{}
	}
	return target
}

// Prune drops identifiers absent from valid, the ids of the backing collection.
func (s Set) Prune(valid []record.ID) Set {
	if s.IsEmpty() {
		return s
	}
	keep := make(map[record.ID]struct{}, len(valid))
	for _, id := range valid {
		keep[id] = struct{}{}
	}
	next := Set{ids: make(map[record.ID]struct{}, len(s.ids))}
	for id := range s.ids {
		if _, ok := keep[id]; ok {
			next.ids[id] = struct{}{}
		}
	}
	return next
}

// Clear returns the empty selection.
func (s Set) Clear() Set { return Set{} }

func (s Set) clone() Set {
	m := make(map[record.ID]struct{}, len(s.ids)+1)
	for id := range s.ids {
		m[id] = struct{}{}
	}
	return Set{ids: m}
}
