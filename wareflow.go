// Package wareflow is an embeddable data view engine for admin list screens:
// schema-declared free-text search, filters, sorting, pagination and row
// selection over in-memory record collections.
package wareflow

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domcust "github.com/kailas-cloud/wareflow/internal/domain/customer"
	dompurchase "github.com/kailas-cloud/wareflow/internal/domain/purchase"
	"github.com/kailas-cloud/wareflow/internal/domain/record"
	domuser "github.com/kailas-cloud/wareflow/internal/domain/user"
	"github.com/kailas-cloud/wareflow/internal/domain/view/filter"
	"github.com/kailas-cloud/wareflow/internal/domain/view/order"
	"github.com/kailas-cloud/wareflow/internal/domain/view/page"
	"github.com/kailas-cloud/wareflow/internal/domain/view/schema"
	"github.com/kailas-cloud/wareflow/internal/domain/view/selection"
	"github.com/kailas-cloud/wareflow/internal/usecase/dataview"
	"github.com/kailas-cloud/wareflow/internal/usecase/listing"
)

type (
	// Record is one row of a collection, keyed by field name.
	Record = record.Record
	// ID identifies a record within its collection.
	ID = record.ID
	// Schema declares the searchable, filterable and sortable fields of a view.
	Schema = schema.Schema
	// Filters maps filter keys (and "search") to raw input values.
	Filters = filter.Config
	// Direction is a sort direction.
	Direction = order.Direction
	// Selection is an immutable set of selected record ids.
	Selection = selection.Set
	// Result is one computed page of raw records.
	Result = dataview.Result
	// Page is one page of typed items plus pager and selection state.
	Page[T any] = listing.Page[T]
	// Observer receives per-call measurements of the engine.
	Observer = dataview.Observer
)

// Sort directions.
const (
	Asc  = order.Asc
	Desc = order.Desc
)

// SearchKey is the filter key for free-text search.
const SearchKey = schema.SearchKey

// Query is a view request. Zero values select the first page and the input order.
// Client.Apply needs a positive PageSize unless the client was built WithPageLimits.
// Views always fall back to the default page size.
type Query struct {
	Filters   Filters
	SortKey   string
	Direction Direction
	Page      int
	PageSize  int
}

// Client is the wareflow SDK entry point.
type Client struct {
	engine *dataview.Engine
	cfg    clientConfig
}

// New creates a Client.
func New(opts ...Option) *Client {
	cfg := clientConfig{logger: zap.NewNop()}
	for _, o := range opts {
		o(&cfg)
	}

	var engineOpts []dataview.Option
	if cfg.strict {
		engineOpts = append(engineOpts, dataview.WithStrictFields())
	}
	if cfg.observer != nil {
		engineOpts = append(engineOpts, dataview.WithObserver(cfg.observer))
	}

	return &Client{engine: dataview.New(cfg.logger, engineOpts...), cfg: cfg}
}

// Apply filters, sorts and pages records according to s.
func (c *Client) Apply(ctx context.Context, s Schema, records []Record, q Query) (Result, error) {
	pageCfg, err := c.pageConfig(q)
	if err != nil {
		return Result{}, fmt.Errorf("wareflow: %w", err)
	}
	sortCfg, err := listing.SortConfig(q.SortKey, q.Direction, order.None())
	if err != nil {
		return Result{}, fmt.Errorf("wareflow: %w", err)
	}

	res, err := c.engine.Apply(ctx, records, s, dataview.Query{Filters: q.Filters, Sort: sortCfg, Page: pageCfg})
	if err != nil {
		return Result{}, fmt.Errorf("wareflow: apply %s: %w", s.Name(), err)
	}
	return res, nil
}

func (c *Client) pageConfig(q Query) (page.Config, error) {
	if c.cfg.limits != nil {
		return c.cfg.limits.Page(q.Page, q.PageSize)
	}
	return page.New(q.Page, q.PageSize)
}

// Select returns every record matching q's filters in q's sort order, unpaged.
func (c *Client) Select(ctx context.Context, s Schema, records []Record, q Query) ([]Record, error) {
	sortCfg, err := listing.SortConfig(q.SortKey, q.Direction, order.None())
	if err != nil {
		return nil, fmt.Errorf("wareflow: %w", err)
	}
	out, err := c.engine.Select(ctx, records, s, q.Filters, sortCfg)
	if err != nil {
		return nil, fmt.Errorf("wareflow: select %s: %w", s.Name(), err)
	}
	return out, nil
}

// CustomerSchema returns the schema of the customer management screen.
func CustomerSchema() Schema { return domcust.Schema() }

// UserSchema returns the schema of the user management screen.
func UserSchema() Schema { return domuser.Schema() }

// PurchaseSchema returns the schema of a customer's purchase history.
func PurchaseSchema() Schema { return dompurchase.Schema() }
