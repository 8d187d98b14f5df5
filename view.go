package wareflow

import (
	"context"
	"fmt"
	"reflect"
	"strconv"

	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/repository/memstore"
	"github.com/kailas-cloud/wareflow/internal/usecase/listing"
)

// View is a generic, schema-first list screen over an in-memory collection.
// Schema is inferred from T's struct tags at construction time. A View keeps
// its own row selection and is safe for concurrent use.
type View[T any] struct {
	name    string
	meta    *schemaMeta
	store   *memstore.Store
	listing *listing.Service[T]
}

// NewView creates a typed view named name, loaded with items.
// T must be a struct with wareflow tags. Schema is parsed once and cached.
func NewView[T any](client *Client, name string, items []T) (*View[T], error) {
	meta, err := parseSchema[T](name)
	if err != nil {
		return nil, fmt.Errorf("new view %q: %w", name, err)
	}
	if client == nil {
		client = New()
	}

	records := make([]record.Record, len(items))
	for i, item := range items {
		records[i] = meta.toRecord(item)
	}
	store := memstore.New(name, records)

	decode := func(r record.Record) (T, error) {
		item, ok := meta.fromRecord(r).(T)
		if !ok {
			var zero T
			return zero, fmt.Errorf("decode %s: type assertion failed", name)
		}
		return item, nil
	}

	l := listing.New(store, client.engine, meta.schema, decode,
		listing.WithLogger(client.cfg.logger),
		listing.WithLimits(client.cfg.screenLimits()),
	)
	return &View[T]{name: name, meta: meta, store: store, listing: l}, nil
}

// Schema returns the schema parsed from T.
func (v *View[T]) Schema() Schema { return v.meta.schema }

// Revision returns the collection revision, bumped by every write.
func (v *View[T]) Revision() int { return v.store.Revision() }

// Count returns the number of items in the collection.
func (v *View[T]) Count(ctx context.Context) (int, error) {
	records, _, err := v.listing.Records(ctx)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return len(records), nil
}

// Get retrieves a typed item by id.
func (v *View[T]) Get(ctx context.Context, id ID) (T, error) {
	item, err := v.listing.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("get: %w", err)
	}
	return item, nil
}

// Add appends item. A zero id is replaced by one more than the highest
// numeric id in the collection. Returns the stored item.
func (v *View[T]) Add(ctx context.Context, item T) (T, error) {
	out, _, err := v.listing.Insert(ctx, func(nextID int64) (record.Record, error) {
		r := v.meta.toRecord(item)
		idName := v.meta.schema.IDField()
		if id, ok := r.ID(idName); !ok || id == "0" {
			if reflect.ValueOf(item).Field(v.meta.idIdx).Kind() == reflect.String {
				r[idName] = strconv.FormatInt(nextID, 10)
			} else {
				r[idName] = nextID
			}
		}
		return r, nil
	})
	if err != nil {
		var zero T
		return zero, fmt.Errorf("add: %w", err)
	}
	return out, nil
}

// Put replaces the item with the same id.
func (v *View[T]) Put(ctx context.Context, item T) (T, error) {
	r := v.meta.toRecord(item)
	id, ok := r.ID(v.meta.schema.IDField())
	if !ok {
		var zero T
		return zero, fmt.Errorf("put: item has no id")
	}
	out, _, err := v.listing.Replace(ctx, id, listing.AnyRevision, func(record.Record) (record.Record, error) {
		return r, nil
	})
	if err != nil {
		var zero T
		return zero, fmt.Errorf("put: %w", err)
	}
	return out, nil
}

// Query returns a fluent query builder for this view.
func (v *View[T]) Query() *QueryBuilder[T] {
	return &QueryBuilder[T]{view: v}
}

// Selection returns the selected ids.
func (v *View[T]) Selection() Selection { return v.listing.Selection() }

// Toggle flips the selection of one item.
func (v *View[T]) Toggle(ctx context.Context, id ID) (Selection, error) {
	sel, err := v.listing.Toggle(ctx, id)
	if err != nil {
		return Selection{}, fmt.Errorf("toggle: %w", err)
	}
	return sel, nil
}

// ClearSelection deselects everything.
func (v *View[T]) ClearSelection() Selection { return v.listing.ClearSelection() }

// Selected returns the selected items in collection order.
func (v *View[T]) Selected(ctx context.Context) ([]T, error) {
	records, err := v.listing.BulkPick(ctx)
	if err != nil {
		return nil, fmt.Errorf("selected: %w", err)
	}
	return v.decodeAll(records)
}

// UpdateSelected merges fields into every selected item and clears the selection.
func (v *View[T]) UpdateSelected(ctx context.Context, fields map[string]any) (int, error) {
	res, err := v.listing.BulkUpdate(ctx, listing.ActionUpdate, listing.AnyRevision, fields)
	if err != nil {
		return 0, fmt.Errorf("update selected: %w", err)
	}
	return res.Affected, nil
}

// DeleteSelected removes every selected item.
func (v *View[T]) DeleteSelected(ctx context.Context) (int, error) {
	res, err := v.listing.BulkDelete(ctx, listing.AnyRevision)
	if err != nil {
		return 0, fmt.Errorf("delete selected: %w", err)
	}
	return res.Affected, nil
}

func (v *View[T]) decodeAll(records []record.Record) ([]T, error) {
	out := make([]T, 0, len(records))
	for _, r := range records {
		item, ok := v.meta.fromRecord(r).(T)
		if !ok {
			return nil, fmt.Errorf("decode %s: type assertion failed", v.name)
		}
		out = append(out, item)
	}
	return out, nil
}

func (v *View[T]) listQuery(q Query) listing.Query {
	return listing.Query{
		Filters:   q.Filters,
		SortKey:   q.SortKey,
		Direction: q.Direction,
		Page:      q.Page,
		PageSize:  q.PageSize,
	}
}
