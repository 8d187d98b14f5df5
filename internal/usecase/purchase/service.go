package purchase

import (
	"context"
	"fmt"
	"io"
	"maps"

	domcust "github.com/kailas-cloud/wareflow/internal/domain/customer"
	dompurchase "github.com/kailas-cloud/wareflow/internal/domain/purchase"
	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/domain/view/filter"
	"github.com/kailas-cloud/wareflow/internal/domain/view/order"
	"github.com/kailas-cloud/wareflow/internal/domain/view/value"
	"github.com/kailas-cloud/wareflow/internal/export"
	"github.com/kailas-cloud/wareflow/internal/usecase/listing"
)

// SheetName is the worksheet and file base name of purchase history exports.
const SheetName = "historial-compras"

// Columns are the export columns with their Spanish headers.
var Columns = []export.Column{
	{Key: dompurchase.FieldID, Header: "ID Orden"},
	{Key: dompurchase.FieldDate, Header: "Fecha"},
	{Key: dompurchase.FieldProducts, Header: "Productos"},
	{Key: dompurchase.FieldCategory, Header: "Categoría"},
	{Key: dompurchase.FieldAmount, Header: "Monto"},
	{Key: dompurchase.FieldStatus, Header: "Estado"},
	{Key: dompurchase.FieldPaymentMethod, Header: "Método de pago"},
}

// History is one page of a customer's purchases.
// Summary covers every purchase matching the query, not only the visible page.
type History struct {
	Customer domcust.Customer
	Page     listing.Page[dompurchase.Purchase]
	Summary  dompurchase.Summary
}

// Service serves the purchase history of customer profiles.
type Service struct {
	listing   *Listing
	customers CustomerFinder
}

// NewListing creates the purchase workspace, newest orders first by default.
func NewListing(store listing.Store, engine listing.Engine, opts ...listing.Option) *Listing {
	byDate, _ := order.New(dompurchase.FieldDate, order.Desc)
	opts = append([]listing.Option{listing.WithDefaultSort(byDate)}, opts...)
	return listing.New(store, engine, dompurchase.Schema(), dompurchase.FromRecord, opts...)
}

// New creates a purchase history service.
func New(l *Listing, customers CustomerFinder) *Service {
	return &Service{listing: l, customers: customers}
}

// History lists the purchases of one customer.
// The customer filter of q is always replaced by customerID.
func (s *Service) History(ctx context.Context, customerID record.ID, q listing.Query) (History, error) {
	c, err := s.customers.Get(ctx, customerID)
	if err != nil {
		return History{}, fmt.Errorf("purchase history: %w", err)
	}

	q = scoped(q, customerID)
	p, err := s.listing.List(ctx, q)
	if err != nil {
		return History{}, fmt.Errorf("purchase history of %s: %w", customerID, err)
	}
	matching, err := s.listing.Export(ctx, q)
	if err != nil {
		return History{}, fmt.Errorf("purchase summary of %s: %w", customerID, err)
	}

	return History{Customer: c, Page: p, Summary: dompurchase.Summarize(matching)}, nil
}

// ExportHistory writes the customer's purchases matching q to w.
func (s *Service) ExportHistory(
	ctx context.Context, w io.Writer, f export.Format, customerID record.ID, q listing.Query,
) error {
	if _, err := s.customers.Get(ctx, customerID); err != nil {
		return fmt.Errorf("export purchase history: %w", err)
	}
	records, err := s.listing.Export(ctx, scoped(q, customerID))
	if err != nil {
		return fmt.Errorf("export purchase history of %s: %w", customerID, err)
	}

	rows := make([]record.Record, len(records))
	for i, r := range records {
		rows[i] = r.Merge(map[string]any{
			dompurchase.FieldProducts: value.String(r[dompurchase.FieldProducts]),
			dompurchase.FieldStatus:   dompurchase.Status(value.String(r[dompurchase.FieldStatus])).Label(),
		})
	}
	if err := export.Write(w, f, SheetName, Columns, rows); err != nil {
		return fmt.Errorf("export purchases: %w", err)
	}
	return nil
}

func scoped(q listing.Query, customerID record.ID) listing.Query {
	filters := make(filter.Config, len(q.Filters)+1)
	maps.Copy(filters, q.Filters)
	filters[dompurchase.FilterCustomer] = string(customerID)
	q.Filters = filters
	return q
}
