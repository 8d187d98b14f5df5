// Package user defines back-office users, their roles, permissions and navigation.
package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/domain/validation"
	"github.com/kailas-cloud/wareflow/internal/domain/view/value"
)

// Role is the user's access role.
type Role string

// Role constants.
const (
	Owner   Role = "owner"
	Manager Role = "manager"
	Staff   Role = "staff"
)

// IsValid checks if the role is one of the supported values.
func (r Role) IsValid() bool {
	return r == Owner || r == Manager || r == Staff
}

// Label returns the Spanish display label.
func (r Role) Label() string {
	switch r {
	case Owner:
		return "Propietario"
	case Manager:
		return "Gerente"
	case Staff:
		return "Personal"
	}
	return string(r)
}

// Status is the user account status.
type Status string

// Status constants.
const (
	Active    Status = "active"
	Inactive  Status = "inactive"
	Suspended Status = "suspended"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	return s == Active || s == Inactive || s == Suspended
}

// Label returns the Spanish display label.
func (s Status) Label() string {
	switch s {
	case Active:
		return "Activo"
	case Inactive:
		return "Inactivo"
	case Suspended:
		return "Suspendido"
	}
	return string(s)
}

// Toggled flips active and inactive. Any other status becomes active.
func (s Status) Toggled() Status {
	if s == Active {
		return Inactive
	}
	return Active
}

// Warehouse is one of the business's warehouses.
type Warehouse struct {
	ID   string
	Name string
}

var warehouses = []Warehouse{
	{"havana-central", "Almacén Central Habana"},
	{"santiago-norte", "Almacén Norte Santiago"},
	{"matanzas-sur", "Almacén Sur Matanzas"},
	{"villa-clara", "Almacén Villa Clara"},
	{"camaguey-este", "Almacén Este Camagüey"},
}

// Warehouses returns the warehouse catalogue.
func Warehouses() []Warehouse {
	out := make([]Warehouse, len(warehouses))
	copy(out, warehouses)
	return out
}

// WarehouseByID looks up a warehouse.
func WarehouseByID(id string) (Warehouse, bool) {
	for _, w := range warehouses {
		if w.ID == id {
			return w, true
		}
	}
	return Warehouse{}, false
}

// Record field names.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldEmail       = "email"
	FieldCubanID     = "cubanId"
	FieldPhone       = "phone"
	FieldRole        = "role"
	FieldStatus      = "status"
	FieldWarehouse   = "warehouse"
	FieldWarehouseID = "warehouseId"
	FieldLastLogin   = "lastLogin"
	FieldCreatedAt   = "createdAt"
	FieldPermissions = "permissions"
)

// User is one back-office account.
type User struct {
	ID          int64
	Name        string
	Email       string
	CubanID     string
	Phone       string
	Role        Role
	Status      Status
	WarehouseID string
	Warehouse   string
	LastLogin   *time.Time
	CreatedAt   time.Time
	Permissions Permissions
}

// Input is the create/edit form. Credentials are not part of it.
type Input struct {
	Name      string `json:"name" validate:"notblank"`
	Email     string `json:"email" validate:"required,basic_email"`
	CubanID   string `json:"cubanId" validate:"required,cu_id"`
	Phone     string `json:"phone" validate:"required,cu_phone_loose"`
	Role      Role   `json:"role" validate:"oneof=owner manager staff"`
	Warehouse string `json:"warehouse"`
	Status    Status `json:"status" validate:"oneof=active inactive suspended"`
}

// Normalize trims text fields and applies the form defaults (role staff, status active).
func (in Input) Normalize() Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.CubanID = strings.TrimSpace(in.CubanID)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Warehouse = strings.TrimSpace(in.Warehouse)
	if in.Role == "" {
		in.Role = Staff
	}
	if in.Status == "" {
		in.Status = Active
	}
	return in
}

// Validate normalizes and validates the form, including the warehouse choice.
func (in Input) Validate() error {
	in = in.Normalize()
	err := validation.Struct(in)
	if _, ok := WarehouseByID(in.Warehouse); ok {
		return err
	}

	const msg = "Debe seleccionar un almacén"
	var verr *validation.Error
	switch {
	case err == nil:
		return validation.Field(FieldWarehouse, msg)
	case errors.As(err, &verr):
		verr.Fields[FieldWarehouse] = msg
		return verr
	default:
		return err
	}
}

// Create validates in and builds a user who has never logged in and holds no permissions.
func Create(id int64, in Input, now time.Time) (User, error) {
	if err := in.Validate(); err != nil {
		return User{}, err
	}
	in = in.Normalize()
	w, _ := WarehouseByID(in.Warehouse)
	return User{
		ID:          id,
		Name:        in.Name,
		Email:       in.Email,
		CubanID:     in.CubanID,
		Phone:       in.Phone,
		Role:        in.Role,
		Status:      in.Status,
		WarehouseID: w.ID,
		Warehouse:   w.Name,
		CreatedAt:   now,
		Permissions: NoPermissions(),
	}, nil
}

// Edit applies a validated form to u, keeping login history and permissions.
func (u User) Edit(in Input) (User, error) {
	if err := in.Validate(); err != nil {
		return User{}, err
	}
	in = in.Normalize()
	w, _ := WarehouseByID(in.Warehouse)
	u.Name, u.Email, u.CubanID, u.Phone = in.Name, in.Email, in.CubanID, in.Phone
	u.Role, u.Status = in.Role, in.Status
	u.WarehouseID, u.Warehouse = w.ID, w.Name
	return u, nil
}

// ToRecord converts the user to its data view record.
func (u User) ToRecord() record.Record {
	r := record.Record{
		FieldID:          u.ID,
		FieldName:        u.Name,
		FieldEmail:       u.Email,
		FieldCubanID:     u.CubanID,
		FieldPhone:       u.Phone,
		FieldRole:        string(u.Role),
		FieldStatus:      string(u.Status),
		FieldWarehouse:   u.Warehouse,
		FieldWarehouseID: u.WarehouseID,
		FieldCreatedAt:   u.CreatedAt,
		FieldPermissions: u.Permissions.Clone(),
	}
	if u.LastLogin != nil {
		r[FieldLastLogin] = *u.LastLogin
	} else {
		r[FieldLastLogin] = nil
	}
	return r
}

// FromRecord reads a user back from a record. Only the identifier is required.
func FromRecord(r record.Record) (User, error) {
	id, ok := value.Number(r[FieldID])
	if !ok {
		return User{}, fmt.Errorf("user record has no numeric id")
	}
	u := User{
		ID:          int64(id),
		Name:        value.String(r[FieldName]),
		Email:       value.String(r[FieldEmail]),
		CubanID:     value.String(r[FieldCubanID]),
		Phone:       value.String(r[FieldPhone]),
		Role:        Role(value.String(r[FieldRole])),
		Status:      Status(value.String(r[FieldStatus])),
		Warehouse:   value.String(r[FieldWarehouse]),
		WarehouseID: value.String(r[FieldWarehouseID]),
	}
	if t, ok := value.Date(r[FieldLastLogin]); ok {
		u.LastLogin = &t
	}
	u.CreatedAt, _ = value.Date(r[FieldCreatedAt])
	if p, ok := r[FieldPermissions].(Permissions); ok {
		u.Permissions = p.Clone()
	} else {
		u.Permissions = NoPermissions()
	}
	return u, nil
}
