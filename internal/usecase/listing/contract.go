package listing

import (
	"context"

	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/domain/view/filter"
	"github.com/kailas-cloud/wareflow/internal/domain/view/order"
	"github.com/kailas-cloud/wareflow/internal/domain/view/schema"
	"github.com/kailas-cloud/wareflow/internal/usecase/dataview"
)

// AnyRevision skips the optimistic concurrency check in Store.Mutate.
const AnyRevision = 0

// Store defines the storage contract for one revisioned collection.
type Store interface {
	Name() string
	Snapshot(ctx context.Context) ([]record.Record, int, error)
	Mutate(ctx context.Context, expectedRevision int, fn func([]record.Record) ([]record.Record, error)) (int, error)
	Ping(ctx context.Context) error
}

// Engine computes views over a snapshot.
type Engine interface {
	Apply(ctx context.Context, records []record.Record, s schema.Schema, q dataview.Query) (dataview.Result, error)
	Select(
		ctx context.Context, records []record.Record, s schema.Schema, filters filter.Config, sortCfg order.Config,
	) ([]record.Record, error)
}

// Decoder converts a stored record into the entity returned to callers.
type Decoder[T any] func(record.Record) (T, error)

// BulkObserverFunc receives the number of records touched by a bulk action.
type BulkObserverFunc func(schema, action string, count int)
