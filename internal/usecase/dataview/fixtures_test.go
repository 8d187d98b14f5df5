package dataview

import (
	"testing"

	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/domain/view/field"
	"github.com/kailas-cloud/wareflow/internal/domain/view/schema"
)

func customerSchema(t *testing.T) schema.Schema {
	t.Helper()
	mk := func(key string, kind schema.FilterKind, target string) schema.Filter {
		f, err := schema.NewFilter(key, kind, target)
		if err != nil {
			t.Fatalf("NewFilter(%q): %v", key, err)
		}
		return f
	}
	s, err := schema.New("customers", "id",
		[]field.Field{
			field.MustNew("id", field.Numeric),
			field.MustNew("name", field.String),
			field.MustNew("email", field.String),
			field.MustNew("segment", field.String),
			field.MustNew("status", field.String),
			field.MustNew("totalSpent", field.Numeric),
			field.MustNew("lastPurchase", field.Date),
		},
		[]string{"name", "email"},
		[]schema.Filter{
			mk("segment", schema.Categorical, "segment"),
			mk("status", schema.Categorical, "status"),
			mk("minAmount", schema.NumericMin, "totalSpent"),
			mk("maxAmount", schema.NumericMax, "totalSpent"),
			mk("dateFrom", schema.DateFrom, "lastPurchase"),
			mk("dateTo", schema.DateTo, "lastPurchase"),
		},
	)
	if err != nil {
		t.Fatalf("schema.New: %v", err)
	}
	return s
}

func customers() []record.Record {
	return []record.Record{
		{"id": int64(1), "name": "María Elena González", "email": "maria.gonzalez@email.cu",
			"segment": "frequent", "status": "active", "totalSpent": 15750.50, "lastPurchase": "2025-01-15"},
		{"id": int64(2), "name": "Carlos Alberto Rodríguez", "email": "carlos.rodriguez@correo.cu",
			"segment": "occasional", "status": "active", "totalSpent": 8920.25, "lastPurchase": "2025-01-12"},
		{"id": int64(3), "name": "Ana Beatriz Fernández", "email": "ana.fernandez@gmail.com",
			"segment": "new", "status": "active", "totalSpent": 2340.00, "lastPurchase": "2025-01-10"},
		{"id": int64(4), "name": "Roberto Luis Martínez", "email": "roberto.martinez@empresa.cu",
			"segment": "frequent", "status": "inactive", "totalSpent": 22150.75, "lastPurchase": "2024-12-28"},
		{"id": int64(5), "name": "Yolanda Pérez Sánchez", "email": "yolanda.perez@correo.cu",
			"segment": "occasional", "status": "blocked", "totalSpent": 5680.30, "lastPurchase": "2024-11-15"},
		{"id": int64(6), "name": "Jorge Manuel Díaz", "email": "jorge.diaz@email.cu",
			"segment": "new", "status": "active", "totalSpent": 1250.00, "lastPurchase": "2025-01-08"},
		{"id": int64(7), "name": "Carmen Rosa López", "email": "carmen.lopez@correo.cu",
			"segment": "frequent", "status": "active", "totalSpent": 18920.40, "lastPurchase": "2025-01-14"},
		{"id": int64(8), "name": "Pedro Antonio García", "email": "pedro.garcia@empresa.cu",
			"segment": "occasional", "status": "active", "totalSpent": 6750.80, "lastPurchase": "2025-01-11"},
	}
}

func ids(t *testing.T, records []record.Record) []record.ID {
	t.Helper()
	return record.IDs(records, "id")
}
