package wareflow

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/wareflow/internal/domain/view/filter"
)

// QueryBuilder is a fluent builder for typed view queries.
type QueryBuilder[T any] struct {
	view *View[T]
	q    Query
}

// Search sets the free-text search term.
func (b *QueryBuilder[T]) Search(term string) *QueryBuilder[T] {
	return b.Where(SearchKey, term)
}

// Where sets a filter key to a raw input value. An empty value clears it.
func (b *QueryBuilder[T]) Where(key, val string) *QueryBuilder[T] {
	if b.q.Filters == nil {
		b.q.Filters = filter.Config{}
	}
	b.q.Filters[key] = val
	return b
}

// SortBy sorts ascending by key.
func (b *QueryBuilder[T]) SortBy(key string) *QueryBuilder[T] {
	b.q.SortKey, b.q.Direction = key, Asc
	return b
}

// SortDesc sorts descending by key.
func (b *QueryBuilder[T]) SortDesc(key string) *QueryBuilder[T] {
	b.q.SortKey, b.q.Direction = key, Desc
	return b
}

// Page selects a 1-based page number. Out of range pages clamp to the last page.
func (b *QueryBuilder[T]) Page(n int) *QueryBuilder[T] {
	b.q.Page = n
	return b
}

// PageSize sets the number of items per page.
func (b *QueryBuilder[T]) PageSize(n int) *QueryBuilder[T] {
	b.q.PageSize = n
	return b
}

// Do executes the query and returns one page.
func (b *QueryBuilder[T]) Do(ctx context.Context) (Page[T], error) {
	p, err := b.view.listing.List(ctx, b.view.listQuery(b.q))
	if err != nil {
		return Page[T]{}, fmt.Errorf("query %s: %w", b.view.name, err)
	}
	return p, nil
}

// All executes the query unpaged and returns every matching item.
func (b *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	records, err := b.view.listing.Export(ctx, b.view.listQuery(b.q))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", b.view.name, err)
	}
	return b.view.decodeAll(records)
}

// SelectVisible selects exactly the items on the page the query describes.
func (b *QueryBuilder[T]) SelectVisible(ctx context.Context) (Selection, error) {
	sel, err := b.view.listing.SelectVisible(ctx, b.view.listQuery(b.q))
	if err != nil {
		return Selection{}, fmt.Errorf("select visible %s: %w", b.view.name, err)
	}
	return sel, nil
}
