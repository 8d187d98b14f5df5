package customer

import (
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/wareflow/internal/domain"
	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/domain/validation"
)

var now = time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)

func validInput() Input {
	return Input{
		Name:    "  Laura Vázquez  ",
		Email:   "laura.vazquez@correo.cu",
		Phone:   "+53 5111-2222",
		Cedula:  "90010112345",
		Address: "Calle 10 #12, Miramar, La Habana",
	}
}

func TestCreate_Defaults(t *testing.T) {
	c, err := Create(9, validInput(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name != "Laura Vázquez" {
		t.Errorf("Name = %q, want trimmed", c.Name)
	}
	if c.Segment != New || c.Status != Active {
		t.Errorf("defaults = %s/%s, want new/active", c.Segment, c.Status)
	}
	if c.TotalSpent != 0 || c.LastPurchase != nil {
		t.Errorf("new customer has purchases: %v %v", c.TotalSpent, c.LastPurchase)
	}
	if !c.CreatedAt.Equal(now) || !c.UpdatedAt.Equal(now) {
		t.Errorf("timestamps = %v/%v", c.CreatedAt, c.UpdatedAt)
	}
}

func TestCreate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		field  string
	}{
		{"short name", func(in *Input) { in.Name = " A " }, "name"},
		{"loose phone rejected", func(in *Input) { in.Phone = "+5351112222" }, "phone"},
		{"cedula length", func(in *Input) { in.Cedula = "9001011234" }, "cedula"},
		{"blank address", func(in *Input) { in.Address = "  " }, "address"},
		{"unknown segment", func(in *Input) { in.Segment = "vip" }, "segment"},
		{"unknown status", func(in *Input) { in.Status = "suspended" }, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := Create(1, in, now)
			if !errors.Is(err, domain.ErrValidationFailed) {
				t.Fatalf("expected ErrValidationFailed, got %v", err)
			}
			var verr *validation.Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *validation.Error, got %T", err)
			}
			if _, ok := verr.Fields[tt.field]; !ok {
				t.Errorf("expected failure on %q, got %v", tt.field, verr.Fields)
			}
		})
	}
}

func TestEdit_KeepsMoneyAndCreation(t *testing.T) {
	last := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	orig := Customer{
		ID: 1, Name: "María Elena González", TotalSpent: 15750.50, LastPurchase: &last,
		CreatedAt: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	in := validInput()
	in.Segment = Frequent

	got, err := orig.Edit(in, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 1 || got.TotalSpent != 15750.50 || got.LastPurchase != &last {
		t.Errorf("money/id changed: %+v", got)
	}
	if !got.CreatedAt.Equal(orig.CreatedAt) || !got.UpdatedAt.Equal(now) {
		t.Errorf("timestamps = %v/%v", got.CreatedAt, got.UpdatedAt)
	}
	if got.Segment != Frequent || got.Name != "Laura Vázquez" {
		t.Errorf("form not applied: %+v", got)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	last := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	c := Customer{
		ID: 4, Name: "Roberto Luis Martínez", Segment: Frequent, Status: Inactive,
		TotalSpent: 22150.75, LastPurchase: &last, CreatedAt: now, UpdatedAt: now,
	}
	r := c.ToRecord()
	if id, ok := r.ID(FieldID); !ok || id != "4" {
		t.Errorf("record id = %q", id)
	}

	back, err := FromRecord(r)
	if err != nil {
		t.Fatalf("FromRecord: %v", err)
	}
	if back.ID != 4 || back.Segment != Frequent || back.TotalSpent != 22150.75 {
		t.Errorf("round trip = %+v", back)
	}
	if back.LastPurchase == nil || !back.LastPurchase.Equal(last) {
		t.Errorf("LastPurchase = %v", back.LastPurchase)
	}

	noPurchase := Customer{ID: 9}.ToRecord()
	back, _ = FromRecord(noPurchase)
	if back.LastPurchase != nil {
		t.Error("missing purchase should stay nil")
	}

	if _, err := FromRecord(record.Record{"name": "x"}); err == nil {
		t.Error("expected error for record without id")
	}
}

func TestFormatPhone(t *testing.T) {
	tests := []struct{ in, want string }{
		{"52345678", "+53 5234-5678"},
		{"+53 52345678", "+53 5234-5678"},
		{"5352345678", "+53 5234-5678"},
		{"5234", "+53 5234"},
		{"", "+53 "},
		{"1234567890123", "1234567890123"},
	}
	for _, tt := range tests {
		if got := FormatPhone(tt.in); got != tt.want {
			t.Errorf("FormatPhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLabels(t *testing.T) {
	if Frequent.Label() != "Frecuente" || Blocked.Label() != "Bloqueado" {
		t.Error("unexpected labels")
	}
	if Segment("vip").IsValid() || !Occasional.IsValid() {
		t.Error("Segment.IsValid")
	}
	if Status("suspended").IsValid() || !Inactive.IsValid() {
		t.Error("Status.IsValid")
	}
}

func TestSchema(t *testing.T) {
	s := Schema()
	if s.Name() != SchemaName || s.IDField() != FieldID {
		t.Errorf("schema = %s/%s", s.Name(), s.IDField())
	}
	for _, key := range []string{FilterSegment, FilterStatus, FilterMinAmount, FilterMaxAmount, FilterDateFrom, FilterDateTo} {
		if _, ok := s.Filter(key); !ok {
			t.Errorf("missing filter %q", key)
		}
	}
	if len(s.Searchable()) != 4 {
		t.Errorf("searchable = %v", s.Searchable())
	}
}

func TestComputeStats(t *testing.T) {
	records := []record.Record{
		{"id": 1, "status": "active", "segment": "frequent", "totalSpent": 100.5},
		{"id": 2, "status": "inactive", "segment": "frequent", "totalSpent": 50.0},
		{"id": 3, "status": "active", "segment": "new"},
	}
	got := ComputeStats(records)
	want := Stats{Total: 3, Active: 2, Frequent: 2, TotalRevenue: 150.5}
	if got != want {
		t.Errorf("ComputeStats = %+v, want %+v", got, want)
	}
}
