package purchase

import (
	"sync"

	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/domain/view/field"
	"github.com/kailas-cloud/wareflow/internal/domain/view/schema"
	"github.com/kailas-cloud/wareflow/internal/domain/view/value"
)

// SchemaName names the purchase history data view in logs and metrics.
const SchemaName = "purchases"

// Filter keys. FilterCustomer scopes the history to one customer.
const (
	FilterCustomer  = "customer"
	FilterStatus    = "status"
	FilterCategory  = "category"
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
			field.MustNew(FieldID, field.String),
			field.MustNew(FieldCustomerID, field.String),
			field.MustNew(FieldDate, field.Date),
			field.MustNew(FieldProducts, field.String),
			field.MustNew(FieldCategory, field.String),
			field.MustNew(FieldAmount, field.Numeric),
			field.MustNew(FieldStatus, field.String),
			field.MustNew(FieldPaymentMethod, field.String),
		},
		[]string{FieldID, FieldProducts, FieldCategory},
		[]schema.Filter{
			mustFilter(FilterCustomer, schema.Categorical, FieldCustomerID),
			mustFilter(FilterStatus, schema.Categorical, FieldStatus),
			mustFilter(FilterCategory, schema.Categorical, FieldCategory),
			mustFilter(FilterMinAmount, schema.NumericMin, FieldAmount),
			mustFilter(FilterMaxAmount, schema.NumericMax, FieldAmount),
			mustFilter(FilterDateFrom, schema.DateFrom, FieldDate),
			mustFilter(FilterDateTo, schema.DateTo, FieldDate),
		},
	)
})

// Schema returns the purchase field declarations.
func Schema() schema.Schema { return schemaOnce() }

// Summary is the header of a purchase history.
// Only completed orders count towards TotalSpent and AverageOrder.
type Summary struct {
	Transactions int
	Completed    int
	TotalSpent   float64
	AverageOrder float64
}

// Summarize aggregates purchase records. AverageOrder is 0 without completed orders.
func Summarize(records []record.Record) Summary {
	var s Summary
	for _, r := range records {
		s.Transactions++
		if value.String(r[FieldStatus]) != string(Completed) {
			continue
		}
		s.Completed++
		if n, ok := value.Number(r[FieldAmount]); ok {
			s.TotalSpent += n
		}
	}
	if s.Completed > 0 {
		s.AverageOrder = s.TotalSpent / float64(s.Completed)
	}
	return s
}
