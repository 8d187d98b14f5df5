package customer

import (
	"sync"

	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/domain/view/field"
	"github.com/kailas-cloud/wareflow/internal/domain/view/schema"
	"github.com/kailas-cloud/wareflow/internal/domain/view/value"
)

// SchemaName names the customer data view in logs and metrics.
const SchemaName = "customers"

// Filter keys.
const (
	FilterSegment   = "segment"
	FilterStatus    = "status"
	FilterMinAmount = "minAmount"
	FilterMaxAmount = "maxAmount"
	FilterDateFrom  = "dateFrom"
	FilterDateTo    = "dateTo"
)

var schemaOnce = sync.OnceValue(func() schema.Schema {
	mustFilter := func(key string, kind schema.FilterKind, target string) schema.Filter {
		f, err := schema.NewFilter(key, kind, target)
		if err != nil {
			panic(err)
		}
		return f
	}
	return schema.MustNew(SchemaName, FieldID,
		[]field.Field{
			field.MustNew(FieldID, field.Numeric),
			field.MustNew(FieldName, field.String),
			field.MustNew(FieldEmail, field.String),
			field.MustNew(FieldPhone, field.String),
			field.MustNew(FieldCedula, field.String),
			field.MustNew(FieldAddress, field.String),
			field.MustNew(FieldSegment, field.String),
			field.MustNew(FieldStatus, field.String),
			field.MustNew(FieldTotalSpent, field.Numeric),
			field.MustNew(FieldLastPurchase, field.Date),
			field.MustNew(FieldCreatedAt, field.Date),
			field.MustNew(FieldUpdatedAt, field.Date),
		},
		[]string{FieldName, FieldEmail, FieldPhone, FieldCedula},
		[]schema.Filter{
			mustFilter(FilterSegment, schema.Categorical, FieldSegment),
			mustFilter(FilterStatus, schema.Categorical, FieldStatus),
			mustFilter(FilterMinAmount, schema.NumericMin, FieldTotalSpent),
			mustFilter(FilterMaxAmount, schema.NumericMax, FieldTotalSpent),
			mustFilter(FilterDateFrom, schema.DateFrom, FieldLastPurchase),
			mustFilter(FilterDateTo, schema.DateTo, FieldLastPurchase),
		},
	)
})

// Schema returns the customer field declarations.
func Schema() schema.Schema { return schemaOnce() }

// Stats are the headline counters of the customer screen.
type Stats struct {
	Total        int
	Active       int
	Frequent     int
	TotalRevenue float64
}

// ComputeStats aggregates customer records. Missing totals count as 0.
func ComputeStats(records []record.Record) Stats {
	var s Stats
	for _, r := range records {
		s.Total++
		if value.String(r[FieldStatus]) == string(Active) {
			s.Active++
		}
		if value.String(r[FieldSegment]) == string(Frequent) {
			s.Frequent++
		}
		if n, ok := value.Number(r[FieldTotalSpent]); ok {
			s.TotalRevenue += n
		}
	}
	return s
}
