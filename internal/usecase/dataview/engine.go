// Package dataview turns a record collection into a filtered, sorted and
// paginated view. The engine owns no data: every call works on the snapshot
// it is given and returns freshly allocated slices.
package dataview

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/wareflow/internal/domain"
	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/domain/view/compare"
	"github.com/kailas-cloud/wareflow/internal/domain/view/filter"
	"github.com/kailas-cloud/wareflow/internal/domain/view/order"
	"github.com/kailas-cloud/wareflow/internal/domain/view/page"
	"github.com/kailas-cloud/wareflow/internal/domain/view/schema"
	"github.com/kailas-cloud/wareflow/internal/logger"
)

// Query is the full view configuration for one Apply call.
type Query struct {
	Filters filter.Config
	Sort    order.Config
	Page    page.Config
}

// Result is one computed page of a view.
type Result struct {
	Visible       []record.Record
	TotalFiltered int
	TotalPages    int
	EffectivePage int
	Window        page.Window
}

// Engine applies filter, sort and page configs to record collections.
// It is stateless between calls and safe for concurrent use.
type Engine struct {
	logger   *zap.Logger
	strict   bool
	observer Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithStrictFields makes unknown filter or sort keys fail with
// *domain.UnknownFieldError instead of being ignored.
func WithStrictFields() Option {
	return func(e *Engine) { e.strict = true }
}

// WithObserver sets the measurement sink.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// New creates a data view engine. A nil logger disables logging.
func New(log *zap.Logger, opts ...Option) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{logger: log, observer: nopObserver{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Strict reports whether unknown field references are rejected.
func (e *Engine) Strict() bool { return e.strict }

// Apply filters records, sorts the result, and slices out the requested page.
// The requested page is clamped to [1, TotalPages]; TotalPages is at least 1.
func (e *Engine) Apply(ctx context.Context, records []record.Record, s schema.Schema, q Query) (Result, error) {
	if q.Page.Size() <= 0 {
		return Result{}, fmt.Errorf("%w: page size must be positive, got %d",
			domain.ErrInvalidConfiguration, q.Page.Size())
	}

	start := time.Now()

	sorted, err := e.Select(ctx, records, s, q.Filters, q.Sort)
	if err != nil {
		return Result{}, err
	}

	w := q.Page.Window(len(sorted))
	visible := make([]record.Record, w.Len())
	copy(visible, sorted[w.Start:w.End])

	e.observer.ObserveApply(s.Name(), time.Since(start), len(sorted))

	return Result{
		Visible:       visible,
		TotalFiltered: len(sorted),
		TotalPages:    w.TotalPages,
		EffectivePage: w.Page,
		Window:        w,
	}, nil
}

// Select returns the full filtered and sorted sequence, unpaged.
func (e *Engine) Select(
	ctx context.Context, records []record.Record, s schema.Schema, filters filter.Config, sortCfg order.Config,
) ([]record.Record, error) {
	if !sortCfg.Direction().IsValid() {
		return nil, fmt.Errorf("%w: sort direction %q must be asc or desc",
			domain.ErrInvalidConfiguration, sortCfg.Direction())
	}

	set, unknown := filter.Compile(filters, s)
	if len(unknown) > 0 {
		if err := e.unknownFields(ctx, s, domain.ReferenceFilter, unknown); err != nil {
			return nil, err
		}
	}

	out := make([]record.Record, 0, len(records))
	for _, r := range records {
		if set.Matches(r) {
			out = append(out, r)
		}
	}

	if sortCfg.IsZero() {
		return out, nil
	}
	f, ok := s.Field(sortCfg.Key())
	if !ok {
		if err := e.unknownFields(ctx, s, domain.ReferenceSort, []string{sortCfg.Key()}); err != nil {
			return nil, err
		}
		return out, nil
	}

	key, kind := f.Name(), f.Kind()
	desc := sortCfg.Direction() == order.Desc
	slices.SortStableFunc(out, func(a, b record.Record) int {
		c := compare.Compare(a, b, key, kind)
		if desc {
			return -c
		}
		return c
	})
	return out, nil
}

func (e *Engine) unknownFields(ctx context.Context, s schema.Schema, kind string, names []string) error {
	e.observer.ObserveUnknownFields(s.Name(), kind, len(names))
	if e.strict {
		return fmt.Errorf("schema %s: %w", s.Name(), domain.NewUnknownField(kind, names...))
	}
	logger.FromContextOr(ctx, e.logger).Warn("Ignoring unknown field reference",
		zap.String("schema", s.Name()),
		zap.String("kind", kind),
		zap.Strings("keys", names),
	)
	return nil
}
