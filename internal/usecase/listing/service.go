// Package listing holds the state of one management screen: the collection it
// browses, the current selection, and the bulk actions over that selection.
package listing

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/wareflow/internal/domain"
	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/domain/view/bulk"
	"github.com/kailas-cloud/wareflow/internal/domain/view/filter"
	"github.com/kailas-cloud/wareflow/internal/domain/view/order"
	"github.com/kailas-cloud/wareflow/internal/domain/view/page"
	"github.com/kailas-cloud/wareflow/internal/domain/view/schema"
	"github.com/kailas-cloud/wareflow/internal/domain/view/selection"
	"github.com/kailas-cloud/wareflow/internal/domain/view/value"
	"github.com/kailas-cloud/wareflow/internal/logger"
	"github.com/kailas-cloud/wareflow/internal/usecase/dataview"
)

// Bulk action names reported to observers and logs.
const (
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionExport = "export"
)

// pageDelta is how many page links the pager shows on each side of the current page.
const pageDelta = 2

// Limits bounds the page size a caller may request.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultLimits returns the screen defaults: 10 rows, at most 100.
func DefaultLimits() Limits {
	return Limits{DefaultPageSize: 10, MaxPageSize: 100}
}

// Page resolves a requested page number and size. Zero means the first page
// and the default size; sizes above the maximum are clamped.
func (l Limits) Page(number, size int) (page.Config, error) {
	if size == 0 {
		size = l.DefaultPageSize
	}
	if size > l.MaxPageSize {
		size = l.MaxPageSize
	}
	if number == 0 {
		number = 1
	}
	return page.New(number, size)
}

// SortConfig resolves a requested sort. An empty key yields fallback and an
// empty direction means ascending.
func SortConfig(key string, dir order.Direction, fallback order.Config) (order.Config, error) {
	if key == "" {
		return fallback, nil
	}
	if dir == "" {
		dir = order.Asc
	}
	return order.New(key, dir)
}

// Query is a list request as received from the admin API.
// Zero values mean "use the default": first page, default page size,
// the service's default sort, ascending direction.
type Query struct {
	Filters   filter.Config
	SortKey   string
	Direction order.Direction
	Page      int
	PageSize  int
}

// Page is one rendered page of entities plus the pager and selection state.
type Page[T any] struct {
	Items              []T
	Total              int
	TotalPages         int
	Page               int
	PageSize           int
	StartItem          int
	EndItem            int
	Pages              []int
	HasPrev            bool
	HasNext            bool
	Sort               order.Config
	Selected           []record.ID
	AllVisibleSelected bool
	Revision           int
}

// BulkResult describes a committed bulk action.
type BulkResult struct {
	Action   string
	Affected int
	IDs      []record.ID
	Revision int
}

type options struct {
	logger      *zap.Logger
	limits      Limits
	defaultSort order.Config
	observeBulk BulkObserverFunc
}

// Option configures a Service.
type Option func(*options)

// WithLogger sets the fallback logger used when the request context carries none.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLimits sets the page size bounds. Non-positive values keep the defaults.
func WithLimits(l Limits) Option {
	return func(o *options) {
		if l.DefaultPageSize > 0 {
			o.limits.DefaultPageSize = l.DefaultPageSize
		}
		if l.MaxPageSize > 0 {
			o.limits.MaxPageSize = l.MaxPageSize
		}
	}
}

// WithDefaultSort sets the sort used when a query names no sort key.
func WithDefaultSort(c order.Config) Option {
	return func(o *options) { o.defaultSort = c }
}

// WithBulkObserver sets the sink for bulk action counts.
func WithBulkObserver(fn BulkObserverFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.observeBulk = fn
		}
	}
}

// Service is the workspace of one entity screen. The selection it tracks
// only ever holds identifiers present in the store.
type Service[T any] struct {
	store  Store
	engine Engine
	schema schema.Schema
	decode Decoder[T]
	opts   options

	mu       sync.Mutex
	selected selection.Set
}

// New creates a listing service over store.
func New[T any](store Store, engine Engine, s schema.Schema, decode Decoder[T], opts ...Option) *Service[T] {
	o := options{
		logger:      zap.NewNop(),
		limits:      DefaultLimits(),
		defaultSort: order.None(),
		observeBulk: func(string, string, int) {},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Service[T]{store: store, engine: engine, schema: s, decode: decode, opts: o}
}

// Schema returns the schema the service browses.
func (s *Service[T]) Schema() schema.Schema { return s.schema }

// Limits returns the effective page size bounds.
func (s *Service[T]) Limits() Limits { return s.opts.limits }

// Store returns the backing store.
func (s *Service[T]) Store() Store { return s.store }

// List returns one page of the filtered, sorted collection.
func (s *Service[T]) List(ctx context.Context, q Query) (Page[T], error) {
	res, sortCfg, rev, err := s.apply(ctx, q)
	if err != nil {
		return Page[T]{}, err
	}

	items := make([]T, 0, len(res.Visible))
	for _, r := range res.Visible {
		item, err := s.decode(r)
		if err != nil {
			return Page[T]{}, fmt.Errorf("decode %s record: %w", s.schema.Name(), err)
		}
		items = append(items, item)
	}

	visible := record.IDs(res.Visible, s.schema.IDField())
	s.mu.Lock()
	sel := s.selected
	s.mu.Unlock()

	w := res.Window
	return Page[T]{
		Items:              items,
		Total:              res.TotalFiltered,
		TotalPages:         res.TotalPages,
		Page:               res.EffectivePage,
		PageSize:           w.Size,
		StartItem:          w.StartItem(),
		EndItem:            w.EndItem(),
		Pages:              w.VisiblePages(pageDelta),
		HasPrev:            w.HasPrev(),
		HasNext:            w.HasNext(),
		Sort:               sortCfg,
		Selected:           sel.IDs(),
		AllVisibleSelected: len(visible) > 0 && sel.Equal(selection.Of(visible...)),
		Revision:           rev,
	}, nil
}

// Export returns the whole filtered, sorted collection without paging.
func (s *Service[T]) Export(ctx context.Context, q Query) ([]record.Record, error) {
	sortCfg, err := s.sortConfig(q)
	if err != nil {
		return nil, err
	}
	records, _, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", s.schema.Name(), err)
	}
	out, err := s.engine.Select(ctx, records, s.schema, q.Filters, sortCfg)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", s.schema.Name(), err)
	}
	return out, nil
}

// Records returns the raw collection and its revision.
func (s *Service[T]) Records(ctx context.Context) ([]record.Record, int, error) {
	records, rev, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("snapshot %s: %w", s.schema.Name(), err)
	}
	return records, rev, nil
}

// Get returns the entity with the given identifier.
func (s *Service[T]) Get(ctx context.Context, id record.ID) (T, error) {
	var zero T
	records, _, err := s.Records(ctx)
	if err != nil {
		return zero, err
	}
	r, ok := record.Find(records, s.schema.IDField(), id)
	if !ok {
		return zero, fmt.Errorf("%s %s: %w", s.schema.Name(), id, domain.ErrNotFound)
	}
	item, err := s.decode(r)
	if err != nil {
		return zero, fmt.Errorf("decode %s %s: %w", s.schema.Name(), id, err)
	}
	return item, nil
}

// Insert appends the record built for the next free numeric identifier
// (highest existing identifier + 1, or 1 for an empty collection).
// A record reusing an existing identifier fails with ErrAlreadyExists.
func (s *Service[T]) Insert(ctx context.Context, build func(nextID int64) (record.Record, error)) (T, int, error) {
	var created record.Record
	rev, err := s.store.Mutate(ctx, AnyRevision, func(current []record.Record) ([]record.Record, error) {
		idField := s.schema.IDField()
		r, err := build(nextID(current, idField))
		if err != nil {
			return nil, err
		}
		id, ok := r.ID(idField)
		if !ok {
			return nil, fmt.Errorf("%w: new %s record has no %s",
				domain.ErrInvalidConfiguration, s.schema.Name(), idField)
		}
		if _, dup := record.Find(current, idField, id); dup {
			return nil, fmt.Errorf("%s %s: %w", s.schema.Name(), id, domain.ErrAlreadyExists)
		}
		created = r
		return append(slices.Clip(current), r), nil
	})
	if err != nil {
		var zero T
		return zero, 0, fmt.Errorf("insert %s: %w", s.schema.Name(), err)
	}
	return s.decoded(created, rev)
}

// Replace swaps the record with the given identifier for fn's result.
// AnyRevision as expectedRevision skips the concurrency check.
func (s *Service[T]) Replace(
	ctx context.Context, id record.ID, expectedRevision int, fn func(record.Record) (record.Record, error),
) (T, int, error) {
	idField := s.schema.IDField()
	var updated record.Record
	rev, err := s.store.Mutate(ctx, expectedRevision, func(current []record.Record) ([]record.Record, error) {
		i := slices.IndexFunc(current, func(r record.Record) bool {
			rid, ok := r.ID(idField)
			return ok && rid == id
		})
		if i < 0 {
			return nil, fmt.Errorf("%s %s: %w", s.schema.Name(), id, domain.ErrNotFound)
		}
		r, err := fn(current[i])
		if err != nil {
			return nil, err
		}
		if rid, ok := r.ID(idField); !ok || rid != id {
			return nil, fmt.Errorf("%w: identifier of %s %s cannot change",
				domain.ErrInvalidConfiguration, s.schema.Name(), id)
		}
		next := slices.Clone(current)
		next[i] = r
		updated = r
		return next, nil
	})
	if err != nil {
		var zero T
		return zero, 0, fmt.Errorf("update %s: %w", s.schema.Name(), err)
	}
	return s.decoded(updated, rev)
}

// Selection returns the current selection.
func (s *Service[T]) Selection() selection.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Toggle flips the selection of one record. The record must exist.
func (s *Service[T]) Toggle(ctx context.Context, id record.ID) (selection.Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, _, err := s.Records(ctx)
	if err != nil {
		return selection.Set{}, err
	}
	if _, ok := record.Find(records, s.schema.IDField(), id); !ok {
		return selection.Set{}, fmt.Errorf("%s %s: %w", s.schema.Name(), id, domain.ErrNotFound)
	}
	s.selected = s.selected.Toggle(id)
	return s.selected, nil
}

// SelectVisible acts as the header checkbox of the page q describes: when the
// selection already equals the visible page it is cleared, otherwise it
// becomes exactly the visible page.
func (s *Service[T]) SelectVisible(ctx context.Context, q Query) (selection.Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, _, _, err := s.apply(ctx, q)
	if err != nil {
		return selection.Set{}, err
	}
	s.selected = s.selected.SelectAllVisible(record.IDs(res.Visible, s.schema.IDField()))
	return s.selected, nil
}

// ClearSelection empties the selection.
func (s *Service[T]) ClearSelection() selection.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = s.selected.Clear()
	return s.selected
}

// BulkUpdate merges fields into every selected record, then clears the selection.
func (s *Service[T]) BulkUpdate(
	ctx context.Context, action string, expectedRevision int, fields map[string]any,
) (BulkResult, error) {
	u, err := bulk.NewUpdate(fields, s.schema.IDField())
	if err != nil {
		return BulkResult{}, fmt.Errorf("%w: %w", domain.ErrInvalidBulkAction, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sel, err := s.requireSelection(action)
	if err != nil {
		return BulkResult{}, err
	}

	var touched []record.ID
	rev, err := s.store.Mutate(ctx, expectedRevision, func(current []record.Record) ([]record.Record, error) {
		touched = record.IDs(bulk.Pick(current, sel, s.schema.IDField()), s.schema.IDField())
		next, _ := bulk.Apply(current, sel, s.schema.IDField(), u)
		return next, nil
	})
	if err != nil {
		return BulkResult{}, fmt.Errorf("bulk %s %s: %w", action, s.schema.Name(), err)
	}

	s.selected = s.selected.Clear()
	return s.committed(ctx, BulkResult{Action: action, Affected: len(touched), IDs: touched, Revision: rev}), nil
}

// BulkDelete removes every selected record and prunes the selection.
func (s *Service[T]) BulkDelete(ctx context.Context, expectedRevision int) (BulkResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel, err := s.requireSelection(ActionDelete)
	if err != nil {
		return BulkResult{}, err
	}

	var removed, remaining []record.ID
	rev, err := s.store.Mutate(ctx, expectedRevision, func(current []record.Record) ([]record.Record, error) {
		var next []record.Record
		next, removed = bulk.Delete(current, sel, s.schema.IDField())
		remaining = record.IDs(next, s.schema.IDField())
		return next, nil
	})
	if err != nil {
		return BulkResult{}, fmt.Errorf("bulk %s %s: %w", ActionDelete, s.schema.Name(), err)
	}

	s.selected = s.selected.Prune(remaining)
	return s.committed(ctx, BulkResult{Action: ActionDelete, Affected: len(removed), IDs: removed, Revision: rev}), nil
}

// BulkPick returns the selected records in collection order. The selection is kept.
func (s *Service[T]) BulkPick(ctx context.Context) ([]record.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel, err := s.requireSelection(ActionExport)
	if err != nil {
		return nil, err
	}
	records, rev, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	picked := bulk.Pick(records, sel, s.schema.IDField())
	s.committed(ctx, BulkResult{
		Action:   ActionExport,
		Affected: len(picked),
		IDs:      record.IDs(picked, s.schema.IDField()),
		Revision: rev,
	})
	return picked, nil
}

func (s *Service[T]) apply(ctx context.Context, q Query) (dataview.Result, order.Config, int, error) {
	pageCfg, err := s.pageConfig(q)
	if err != nil {
		return dataview.Result{}, order.Config{}, 0, err
	}
	sortCfg, err := s.sortConfig(q)
	if err != nil {
		return dataview.Result{}, order.Config{}, 0, err
	}
	records, rev, err := s.Records(ctx)
	if err != nil {
		return dataview.Result{}, order.Config{}, 0, err
	}
	res, err := s.engine.Apply(ctx, records, s.schema, dataview.Query{
		Filters: q.Filters,
		Sort:    sortCfg,
		Page:    pageCfg,
	})
	if err != nil {
		return dataview.Result{}, order.Config{}, 0, fmt.Errorf("list %s: %w", s.schema.Name(), err)
	}
	return res, sortCfg, rev, nil
}

func (s *Service[T]) pageConfig(q Query) (page.Config, error) {
	return s.opts.limits.Page(q.Page, q.PageSize)
}

func (s *Service[T]) sortConfig(q Query) (order.Config, error) {
	return SortConfig(q.SortKey, q.Direction, s.opts.defaultSort)
}

// requireSelection must be called with s.mu held.
func (s *Service[T]) requireSelection(action string) (selection.Set, error) {
	if s.selected.IsEmpty() {
		return selection.Set{}, fmt.Errorf("%w: %s on %s needs a selection",
			domain.ErrInvalidBulkAction, action, s.schema.Name())
	}
	return s.selected, nil
}

func (s *Service[T]) committed(ctx context.Context, res BulkResult) BulkResult {
	s.opts.observeBulk(s.schema.Name(), res.Action, res.Affected)
	logger.FromContextOr(ctx, s.opts.logger).Info("Bulk action applied",
		zap.String("schema", s.schema.Name()),
		zap.String("action", res.Action),
		zap.Int("affected", res.Affected),
		zap.Int("revision", res.Revision),
	)
	return res
}

func (s *Service[T]) decoded(r record.Record, rev int) (T, int, error) {
	item, err := s.decode(r)
	if err != nil {
		var zero T
		return zero, 0, fmt.Errorf("decode %s record: %w", s.schema.Name(), err)
	}
	return item, rev, nil
}

func nextID(records []record.Record, idField string) int64 {
	var highest int64
	for _, r := range records {
		if n, ok := value.Number(r[idField]); ok && int64(n) > highest {
			highest = int64(n)
		}
	}
	return highest + 1
}
