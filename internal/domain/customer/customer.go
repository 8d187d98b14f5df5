// Package customer defines the customer entity, its form, and its data view schema.
package customer

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/domain/validation"
	"github.com/kailas-cloud/wareflow/internal/domain/view/value"
)

// Segment is the customer classification.
type Segment string

// Segment constants.
const (
	Frequent   Segment = "frequent"
	Occasional Segment = "occasional"
	New        Segment = "new"
)

// IsValid checks if the segment is one of the supported values.
func (s Segment) IsValid() bool {
	return s == Frequent || s == Occasional || s == New
}

// Label returns the Spanish display label.
func (s Segment) Label() string {
	switch s {
	case Frequent:
		return "Frecuente"
	case Occasional:
		return "Ocasional"
	case New:
		return "Nuevo"
	}
	return string(s)
}

// Status is the customer account status.
type Status string

// Status constants.
const (
	Active   Status = "active"
	Inactive Status = "inactive"
	Blocked  Status = "blocked"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	return s == Active || s == Inactive || s == Blocked
}

// Label returns the Spanish display label.
func (s Status) Label() string {
	switch s {
	case Active:
		return "Activo"
	case Inactive:
		return "Inactivo"
	case Blocked:
		return "Bloqueado"
	}
	return string(s)
}

// Record field names.
const (
	FieldID           = "id"
	FieldName         = "name"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldCedula       = "cedula"
	FieldAddress      = "address"
	FieldSegment      = "segment"
	FieldStatus       = "status"
	FieldTotalSpent   = "totalSpent"
	FieldLastPurchase = "lastPurchase"
	FieldCreatedAt    = "createdAt"
	FieldUpdatedAt    = "updatedAt"
)

// Customer is one customer of the business.
type Customer struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	Cedula       string
	Address      string
	Segment      Segment
	Status       Status
	TotalSpent   float64
	LastPurchase *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Input is the create/edit form.
type Input struct {
	Name    string  `json:"name" validate:"notblank,min=2"`
	Email   string  `json:"email" validate:"required,basic_email"`
	Phone   string  `json:"phone" validate:"required,cu_phone"`
	Cedula  string  `json:"cedula" validate:"required,cu_id"`
	Address string  `json:"address" validate:"notblank"`
	Segment Segment `json:"segment" validate:"oneof=frequent occasional new"`
	Status  Status  `json:"status" validate:"oneof=active inactive blocked"`
}

// Normalize trims text fields and applies the form defaults (segment new, status active).
func (in Input) Normalize() Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Cedula = strings.TrimSpace(in.Cedula)
	in.Address = strings.TrimSpace(in.Address)
	if in.Segment == "" {
		in.Segment = New
	}
	if in.Status == "" {
		in.Status = Active
	}
	return in
}

// Validate normalizes and validates the form.
func (in Input) Validate() error {
	return validation.Struct(in.Normalize())
}

// Create validates in and builds a new customer with no purchases.
func Create(id int64, in Input, now time.Time) (Customer, error) {
	if err := in.Validate(); err != nil {
		return Customer{}, err
	}
	in = in.Normalize()
	return Customer{
		ID:        id,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Cedula:    in.Cedula,
		Address:   in.Address,
		Segment:   in.Segment,
		Status:    in.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Edit applies a validated form to c, keeping purchase totals and creation time.
func (c Customer) Edit(in Input, now time.Time) (Customer, error) {
	if err := in.Validate(); err != nil {
		return Customer{}, err
	}
	in = in.Normalize()
	c.Name, c.Email, c.Phone = in.Name, in.Email, in.Phone
	c.Cedula, c.Address = in.Cedula, in.Address
	c.Segment, c.Status = in.Segment, in.Status
	c.UpdatedAt = now
	return c, nil
}

// ToRecord converts the customer to its data view record.
func (c Customer) ToRecord() record.Record {
	r := record.Record{
		FieldID:         c.ID,
		FieldName:       c.Name,
		FieldEmail:      c.Email,
		FieldPhone:      c.Phone,
		FieldCedula:     c.Cedula,
		FieldAddress:    c.Address,
		FieldSegment:    string(c.Segment),
		FieldStatus:     string(c.Status),
		FieldTotalSpent: c.TotalSpent,
		FieldCreatedAt:  c.CreatedAt,
		FieldUpdatedAt:  c.UpdatedAt,
	}
	if c.LastPurchase != nil {
		r[FieldLastPurchase] = *c.LastPurchase
	} else {
		r[FieldLastPurchase] = nil
	}
	return r
}

// FromRecord reads a customer back from a record. Only the identifier is required.
func FromRecord(r record.Record) (Customer, error) {
	id, ok := value.Number(r[FieldID])
	if !ok {
		return Customer{}, fmt.Errorf("customer record has no numeric id")
	}
	c := Customer{
		ID:      int64(id),
		Name:    value.String(r[FieldName]),
		Email:   value.String(r[FieldEmail]),
		Phone:   value.String(r[FieldPhone]),
		Cedula:  value.String(r[FieldCedula]),
		Address: value.String(r[FieldAddress]),
		Segment: Segment(value.String(r[FieldSegment])),
		Status:  Status(value.String(r[FieldStatus])),
	}
	c.TotalSpent, _ = value.Number(r[FieldTotalSpent])
	if t, ok := value.Date(r[FieldLastPurchase]); ok {
		c.LastPurchase = &t
	}
	c.CreatedAt, _ = value.Date(r[FieldCreatedAt])
	c.UpdatedAt, _ = value.Date(r[FieldUpdatedAt])
	return c, nil
}

// FormatPhone normalizes free-form input towards +53 XXXX-XXXX.
// Input with more than 8 national digits is returned unchanged.
func FormatPhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := strings.TrimPrefix(digits.String(), "53")
	if len(d) > 8 {
		return raw
	}
	if len(d) > 4 {
		return "+53 " + d[:4] + "-" + d[4:]
	}
	return "+53 " + d
}
