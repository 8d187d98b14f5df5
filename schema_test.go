package wareflow

import (
	"testing"
	"time"

	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/domain/view/field"
	"github.com/kailas-cloud/wareflow/internal/domain/view/schema"
)

type product struct {
	SKU      int64      `wareflow:"id,id"`
	Name     string     `wareflow:"name,string,search"`
	Category string     `wareflow:"category,string,filter"`
	Price    float64    `wareflow:"price,numeric,min=minPrice,max=maxPrice"`
	Stock    int        `wareflow:"stock,numeric"`
	Received time.Time  `wareflow:"received,date,from=receivedFrom,to=receivedTo"`
	Expires  *time.Time `wareflow:"expires,date"`
	Notes    string
}

type tagged struct {
	Code string `wareflow:"code,id"`
	Name string `wareflow:"name,string,search"`
}

type noIDDoc struct {
	Name string `wareflow:"name,string"`
}

func TestParseSchema_Valid(t *testing.T) {
	meta, err := parseSchema[product]("products")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := meta.schema
	if s.Name() != "products" || s.IDField() != "id" {
		t.Errorf("schema = %s/%s", s.Name(), s.IDField())
	}
	if len(s.Fields()) != 7 {
		t.Errorf("fields = %d, want 7 (untagged skipped)", len(s.Fields()))
	}
	if f, _ := s.Field("received"); f.Kind() != field.Date {
		t.Errorf("received kind = %s", f.Kind())
	}
	if len(s.Searchable()) != 1 || s.Searchable()[0] != "name" {
		t.Errorf("searchable = %v", s.Searchable())
	}

	wantFilters := map[string]schema.FilterKind{
		"category":     schema.Categorical,
		"minPrice":     schema.NumericMin,
		"maxPrice":     schema.NumericMax,
		"receivedFrom": schema.DateFrom,
		"receivedTo":   schema.DateTo,
	}
	for key, kind := range wantFilters {
		f, ok := s.Filter(key)
		if !ok || f.Kind() != kind {
			t.Errorf("filter %s = %v %v, want %s", key, f.Kind(), ok, kind)
		}
	}
}

func TestParseSchema_StringID(t *testing.T) {
	meta, err := parseSchema[tagged]("tagged")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f, _ := meta.schema.Field("code"); f.Kind() != field.String {
		t.Errorf("id kind = %s, want string", f.Kind())
	}
}

func TestParseSchema_Errors(t *testing.T) {
	type badKind struct {
		ID   int    `wareflow:"id,id"`
		Name string `wareflow:"name,text"`
	}
	type wrongType struct {
		ID   int `wareflow:"id,id"`
		Name int `wareflow:"name,date"`
	}
	type dupID struct {
		A int `wareflow:"a,id"`
		B int `wareflow:"b,id"`
	}
	type badOption struct {
		ID    int     `wareflow:"id,id"`
		Price float64 `wareflow:"price,numeric,above=x"`
	}
	type minOnString struct {
		ID   int    `wareflow:"id,id"`
		Name string `wareflow:"name,string,min=x"`
	}

	tests := []struct {
		name  string
		parse func() error
	}{
		{"no id", func() error { _, err := parseSchema[noIDDoc]("x"); return err }},
		{"not a struct", func() error { _, err := parseSchema[int]("x"); return err }},
		{"unknown kind", func() error { _, err := parseSchema[badKind]("x"); return err }},
		{"wrong go type", func() error { _, err := parseSchema[wrongType]("x"); return err }},
		{"duplicate id", func() error { _, err := parseSchema[dupID]("x"); return err }},
		{"unknown option", func() error { _, err := parseSchema[badOption]("x"); return err }},
		{"bound on string", func() error { _, err := parseSchema[minOnString]("x"); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.parse() == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRecordConversion(t *testing.T) {
	meta, err := parseSchema[product]("products")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	received := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	p := product{SKU: 42, Name: "Arroz", Category: "granos", Price: 3.5, Stock: 12, Received: received, Notes: "x"}

	r := meta.toRecord(p)
	if r["id"] != int64(42) || r["price"] != 3.5 || r["stock"] != int64(12) {
		t.Errorf("record = %v", r)
	}
	if r["expires"] != nil {
		t.Errorf("nil pointer date = %v, want nil", r["expires"])
	}
	if _, ok := r["Notes"]; ok {
		t.Error("untagged field exported")
	}

	back, ok := meta.fromRecord(r).(product)
	if !ok {
		t.Fatal("type assertion failed")
	}
	p.Notes = ""
	if back.SKU != p.SKU || back.Name != p.Name || back.Price != p.Price || back.Stock != p.Stock ||
		!back.Received.Equal(received) || back.Expires != nil {
		t.Errorf("round trip = %+v", back)
	}
}

func TestFromRecord_LooseValues(t *testing.T) {
	meta, err := parseSchema[product]("products")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := meta.fromRecord(record.Record{
		"id":      "7",
		"price":   "12.25",
		"expires": "2025-06-30",
		"stock":   "n/a",
	}).(product)
	if got.SKU != 7 || got.Price != 12.25 || got.Stock != 0 {
		t.Errorf("numbers = %+v", got)
	}
	if got.Expires == nil || got.Expires.Month() != time.June {
		t.Errorf("expires = %v", got.Expires)
	}
}
