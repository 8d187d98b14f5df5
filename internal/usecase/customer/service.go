package customer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kailas-cloud/wareflow/internal/domain"
	domcust "github.com/kailas-cloud/wareflow/internal/domain/customer"
	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/domain/view/order"
	"github.com/kailas-cloud/wareflow/internal/domain/view/value"
	"github.com/kailas-cloud/wareflow/internal/export"
	"github.com/kailas-cloud/wareflow/internal/usecase/listing"
)

// Bulk action names.
const (
	ActionStatus  = "status"
	ActionSegment = "segment"
)

// SheetName is the worksheet and file base name of customer exports.
const SheetName = "clientes"

// Columns are the export columns with their Spanish headers.
var Columns = []export.Column{
	{Key: domcust.FieldID, Header: "ID"},
	{Key: domcust.FieldName, Header: "Nombre"},
	{Key: domcust.FieldEmail, Header: "Email"},
	{Key: domcust.FieldPhone, Header: "Teléfono"},
	{Key: domcust.FieldCedula, Header: "Cédula"},
	{Key: domcust.FieldAddress, Header: "Dirección"},
	{Key: domcust.FieldSegment, Header: "Segmento"},
	{Key: domcust.FieldStatus, Header: "Estado"},
	{Key: domcust.FieldTotalSpent, Header: "Total gastado"},
	{Key: domcust.FieldLastPurchase, Header: "Última compra"},
	{Key: domcust.FieldCreatedAt, Header: "Fecha de registro"},
}

// Service handles the customer management screen.
type Service struct {
	*Listing
	now Clock
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for timestamps.
func WithClock(c Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.now = c
		}
	}
}

// NewListing creates the customer workspace, sorted by name by default.
func NewListing(store listing.Store, engine listing.Engine, opts ...listing.Option) *Listing {
	byName, _ := order.New(domcust.FieldName, order.Asc)
	opts = append([]listing.Option{listing.WithDefaultSort(byName)}, opts...)
	return listing.New(store, engine, domcust.Schema(), domcust.FromRecord, opts...)
}

// New creates a customer service.
func New(l *Listing, opts ...Option) *Service {
	s := &Service{Listing: l, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the form and stores a new customer with the next free id.
func (s *Service) Create(ctx context.Context, in domcust.Input) (domcust.Customer, int, error) {
	c, rev, err := s.Insert(ctx, func(id int64) (record.Record, error) {
		c, err := domcust.Create(id, in, s.now())
		if err != nil {
			return nil, err
		}
		return c.ToRecord(), nil
	})
	if err != nil {
		return domcust.Customer{}, 0, fmt.Errorf("create customer: %w", err)
	}
	return c, rev, nil
}

// Update applies the form to an existing customer.
func (s *Service) Update(
	ctx context.Context, id record.ID, expectedRevision int, in domcust.Input,
) (domcust.Customer, int, error) {
	c, rev, err := s.Replace(ctx, id, expectedRevision, func(r record.Record) (record.Record, error) {
		current, err := domcust.FromRecord(r)
		if err != nil {
			return nil, err
		}
		edited, err := current.Edit(in, s.now())
		if err != nil {
			return nil, err
		}
		return edited.ToRecord(), nil
	})
	if err != nil {
		return domcust.Customer{}, 0, fmt.Errorf("update customer: %w", err)
	}
	return c, rev, nil
}

// Stats summarises the whole collection, ignoring any filter.
func (s *Service) Stats(ctx context.Context) (domcust.Stats, error) {
	records, _, err := s.Records(ctx)
	if err != nil {
		return domcust.Stats{}, fmt.Errorf("customer stats: %w", err)
	}
	return domcust.ComputeStats(records), nil
}

// BulkStatus sets the status of every selected customer.
func (s *Service) BulkStatus(ctx context.Context, expectedRevision int, st domcust.Status) (listing.BulkResult, error) {
	if !st.IsValid() {
		return listing.BulkResult{}, fmt.Errorf("%w: unknown customer status %q", domain.ErrInvalidBulkAction, st)
	}
	return s.bulkSet(ctx, ActionStatus, expectedRevision, domcust.FieldStatus, string(st))
}

// BulkSegment sets the segment of every selected customer.
func (s *Service) BulkSegment(ctx context.Context, expectedRevision int, seg domcust.Segment) (listing.BulkResult, error) {
	if !seg.IsValid() {
		return listing.BulkResult{}, fmt.Errorf("%w: unknown customer segment %q", domain.ErrInvalidBulkAction, seg)
	}
	return s.bulkSet(ctx, ActionSegment, expectedRevision, domcust.FieldSegment, string(seg))
}

func (s *Service) bulkSet(
	ctx context.Context, action string, expectedRevision int, key, val string,
) (listing.BulkResult, error) {
	res, err := s.BulkUpdate(ctx, action, expectedRevision, map[string]any{
		key:                   val,
		domcust.FieldUpdatedAt: s.now(),
	})
	if err != nil {
		return listing.BulkResult{}, fmt.Errorf("customer bulk %s: %w", action, err)
	}
	return res, nil
}

// ExportFiltered writes the filtered, sorted collection to w.
func (s *Service) ExportFiltered(ctx context.Context, w io.Writer, f export.Format, q listing.Query) error {
	records, err := s.Export(ctx, q)
	if err != nil {
		return err
	}
	return writeExport(w, f, records)
}

// ExportSelected writes the selected customers to w. The selection is kept.
func (s *Service) ExportSelected(ctx context.Context, w io.Writer, f export.Format) error {
	records, err := s.BulkPick(ctx)
	if err != nil {
		return err
	}
	return writeExport(w, f, records)
}

func writeExport(w io.Writer, f export.Format, records []record.Record) error {
	rows := make([]record.Record, len(records))
	for i, r := range records {
		rows[i] = r.Merge(map[string]any{
			domcust.FieldSegment: domcust.Segment(value.String(r[domcust.FieldSegment])).Label(),
			domcust.FieldStatus:  domcust.Status(value.String(r[domcust.FieldStatus])).Label(),
		})
	}
	if err := export.Write(w, f, SheetName, Columns, rows); err != nil {
		return fmt.Errorf("export customers: %w", err)
	}
	return nil
}
