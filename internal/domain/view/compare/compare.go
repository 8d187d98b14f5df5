// Package compare orders records by a single declared field.
package compare

import (
	"cmp"
	"strings"
	"time"

	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/domain/view/field"
	"github.com/kailas-cloud/wareflow/internal/domain/view/value"
)

// Compare orders a and b by the field key interpreted as kind.
// Returns -1, 0, or 1. Missing or nil values sort before any defined value.
func Compare(a, b record.Record, key string, kind field.Kind) int {
	return Values(a[key], b[key], kind)
}

// Values orders two raw field values interpreted as kind.
// Unparseable numbers compare as 0, unparseable dates as the Unix epoch.
func Values(av, bv any, kind field.Kind) int {
	aNull, bNull := value.IsNull(av), value.IsNull(bv)
	switch {
	case aNull && bNull:
		return 0
	case aNull:
		return -1
	case bNull:
		return 1
	}

	switch kind {
	case field.Numeric:
		an, _ := value.Number(av)
		bn, _ := value.Number(bv)
		return cmp.Compare(an, bn)
	case field.Date:
		return dateOrEpoch(av).Compare(dateOrEpoch(bv))
	default:
		return strings.Compare(value.Lower(value.String(av)), value.Lower(value.String(bv)))
	}
}

func dateOrEpoch(v any) time.Time {
	if t, ok := value.Date(v); ok {
		return t
	}
	return value.Epoch
}
