// Package purchase defines the orders shown in a customer's purchase history.
package purchase

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/domain/view/value"
)

// Status is the state of an order.
type Status string

// Status constants.
const (
	Completed Status = "completed"
	Pending   Status = "pending"
	Cancelled Status = "cancelled"
	Refunded  Status = "refunded"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	return s == Completed || s == Pending || s == Cancelled || s == Refunded
}

// Label returns the Spanish display label. Unknown statuses read as pending.
func (s Status) Label() string {
	switch s {
	case Completed:
		return "Completada"
	case Cancelled:
		return "Cancelada"
	case Refunded:
		return "Reembolsada"
	}
	return "Pendiente"
}

// Record field names.
const (
	FieldID            = "id"
	FieldCustomerID    = "customerId"
	FieldDate          = "date"
	FieldProducts      = "products"
	FieldCategory      = "category"
	FieldAmount        = "amount"
	FieldStatus        = "status"
	FieldPaymentMethod = "paymentMethod"
)

// Purchase is one order placed by a customer.
type Purchase struct {
	ID            string
	CustomerID    int64
	Date          time.Time
	Products      []string
	Category      string
	Amount        float64
	Status        Status
	PaymentMethod string
}

// ToRecord converts the purchase to its data view record.
func (p Purchase) ToRecord() record.Record {
	return record.Record{
		FieldID:            p.ID,
		FieldCustomerID:    p.CustomerID,
		FieldDate:          p.Date,
		FieldProducts:      append([]string(nil), p.Products...),
		FieldCategory:      p.Category,
		FieldAmount:        p.Amount,
		FieldStatus:        string(p.Status),
		FieldPaymentMethod: p.PaymentMethod,
	}
}

// FromRecord reads a purchase back from a record. Only the order id is required.
func FromRecord(r record.Record) (Purchase, error) {
	id := value.String(r[FieldID])
	if id == "" {
		return Purchase{}, fmt.Errorf("purchase record has no id")
	}
	p := Purchase{
		ID:            id,
		Products:      products(r[FieldProducts]),
		Category:      value.String(r[FieldCategory]),
		Status:        Status(value.String(r[FieldStatus])),
		PaymentMethod: value.String(r[FieldPaymentMethod]),
	}
	if n, ok := value.Number(r[FieldCustomerID]); ok {
		p.CustomerID = int64(n)
	}
	if d, ok := value.Date(r[FieldDate]); ok {
		p.Date = d
	}
	if n, ok := value.Number(r[FieldAmount]); ok {
		p.Amount = n
	}
	return p, nil
}

// products accepts a string list as stored, or a JSON-decoded []any.
func products(v any) []string {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := value.String(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t != "" {
			return []string{t}
		}
	}
	return nil
}
