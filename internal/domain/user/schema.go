package user

import (
	"sync"

	"github.com/kailas-cloud/wareflow/internal/domain/view/field"
	"github.com/kailas-cloud/wareflow/internal/domain/view/schema"
)

// SchemaName names the user data view in logs and metrics.
const SchemaName = "users"

// Filter keys.
const (
	FilterRole      = "role"
	FilterStatus    = "status"
	FilterWarehouse = "warehouse"
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
			field.MustNew(FieldCubanID, field.String),
			field.MustNew(FieldPhone, field.String),
			field.MustNew(FieldRole, field.String),
			field.MustNew(FieldStatus, field.String),
			field.MustNew(FieldWarehouse, field.String),
			field.MustNew(FieldWarehouseID, field.String),
			field.MustNew(FieldLastLogin, field.Date),
			field.MustNew(FieldCreatedAt, field.Date),
		},
		[]string{FieldName, FieldEmail, FieldCubanID},
		[]schema.Filter{
			mustFilter(FilterRole, schema.Categorical, FieldRole),
			mustFilter(FilterStatus, schema.Categorical, FieldStatus),
			mustFilter(FilterWarehouse, schema.Categorical, FieldWarehouseID),
		},
	)
})

// Schema returns the user field declarations.
func Schema() schema.Schema { return schemaOnce() }
