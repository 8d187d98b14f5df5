package purchase

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/kailas-cloud/wareflow/internal/domain"
	domcust "github.com/kailas-cloud/wareflow/internal/domain/customer"
	dompurchase "github.com/kailas-cloud/wareflow/internal/domain/purchase"
	"github.com/kailas-cloud/wareflow/internal/domain/view/filter"
	"github.com/kailas-cloud/wareflow/internal/export"
	"github.com/kailas-cloud/wareflow/internal/repository/memstore"
	"github.com/kailas-cloud/wareflow/internal/repository/seed"
	customeruc "github.com/kailas-cloud/wareflow/internal/usecase/customer"
	"github.com/kailas-cloud/wareflow/internal/usecase/dataview"
	"github.com/kailas-cloud/wareflow/internal/usecase/listing"
)

func newService(t *testing.T) *Service {
	t.Helper()
	engine := dataview.New(nil)
	customers := customeruc.New(customeruc.NewListing(memstore.New(domcust.SchemaName, seed.CustomerRecords()), engine))
	store := memstore.New(dompurchase.SchemaName, seed.PurchaseRecords())
	return New(NewListing(store, engine), customers)
}

func orderIDs(items []dompurchase.Purchase) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}

func TestHistory_DefaultsToNewestFirst(t *testing.T) {
	svc := newService(t)

	h, err := svc.History(context.Background(), "1", listing.Query{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Customer.Name != "María Elena González" {
		t.Errorf("customer = %q", h.Customer.Name)
	}
	if h.Page.Total != 8 || len(h.Page.Items) != 8 {
		t.Fatalf("total %d items %d, want 8", h.Page.Total, len(h.Page.Items))
	}
	if h.Page.Items[0].ID != "ORD-2024-008" || h.Page.Items[7].ID != "ORD-2024-001" {
		t.Errorf("order = %v", orderIDs(h.Page.Items))
	}
	if h.Page.StartItem != 1 || h.Page.EndItem != 8 {
		t.Errorf("showing %d to %d", h.Page.StartItem, h.Page.EndItem)
	}
	// 2500 + 1200.50 + 850.75 + 1800.25 + 4100.50 + 320.75; pending and cancelled excluded.
	if h.Summary.Transactions != 8 || h.Summary.Completed != 6 || h.Summary.TotalSpent != 10772.75 {
		t.Errorf("summary = %+v", h.Summary)
	}
}

func TestHistory_SearchSortPage(t *testing.T) {
	svc := newService(t)

	h, err := svc.History(context.Background(), "1", listing.Query{
		Filters:  filter.Config{"search": "electrónicos"},
		SortKey:  dompurchase.FieldAmount,
		PageSize: 2,
		Page:     2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Page.Total != 3 || h.Page.TotalPages != 2 {
		t.Errorf("total %d pages %d", h.Page.Total, h.Page.TotalPages)
	}
	if !slices.Equal(orderIDs(h.Page.Items), []string{"ORD-2024-007"}) {
		t.Errorf("page 2 = %v", orderIDs(h.Page.Items))
	}
	if h.Summary.Transactions != 3 || h.Summary.TotalSpent != 6600.50 {
		t.Errorf("summary follows the search: %+v", h.Summary)
	}
}

func TestHistory_ScopedToCustomer(t *testing.T) {
	svc := newService(t)

	h, err := svc.History(context.Background(), "2", listing.Query{
		Filters: filter.Config{dompurchase.FilterCustomer: "1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Page.Total != 5 {
		t.Errorf("total = %d, want the 5 orders of customer 2", h.Page.Total)
	}
	if h.Summary.Completed != 4 || h.Summary.AverageOrder != 11601.5/4 {
		t.Errorf("summary = %+v", h.Summary)
	}

	empty, err := svc.History(context.Background(), "8", listing.Query{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty.Page.Total != 0 || empty.Summary.AverageOrder != 0 {
		t.Errorf("customer without orders = %+v", empty)
	}
}

func TestHistory_UnknownCustomer(t *testing.T) {
	svc := newService(t)

	if _, err := svc.History(context.Background(), "99", listing.Query{}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	var buf bytes.Buffer
	if err := svc.ExportHistory(context.Background(), &buf, export.CSV, "99", listing.Query{}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestExportHistory_CSV(t *testing.T) {
	svc := newService(t)
	var buf bytes.Buffer

	err := svc.ExportHistory(context.Background(), &buf, export.CSV, "2", listing.Query{
		Filters: filter.Config{dompurchase.FilterStatus: string(dompurchase.Refunded)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want header + 1", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ID Orden,Fecha,Productos") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "INV-2024-145,2024-12-15") || !strings.Contains(lines[1], "Reembolsada") {
		t.Errorf("row = %q", lines[1])
	}
}
