// Package seed provides the demo customers, users, purchases and user activity loaded at startup.
package seed

import (
	"time"

	"github.com/kailas-cloud/wareflow/internal/domain/customer"
	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/domain/user"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

// Customers returns the eight demo customers.
func Customers() []customer.Customer {
	return []customer.Customer{
		{ID: 1, Name: "María Elena González", Email: "maria.gonzalez@email.cu", Phone: "+53 5234-5678",
			Cedula: "85041512345", Address: "Calle 23 #456, Vedado, La Habana",
			Segment: customer.Frequent, Status: customer.Active, TotalSpent: 15750.50,
			LastPurchase: dayPtr("2025-01-15"), CreatedAt: day("2024-03-15"), UpdatedAt: day("2025-01-15")},
		{ID: 2, Name: "Carlos Alberto Rodríguez", Email: "carlos.rodriguez@correo.cu", Phone: "+53 5345-6789",
			Cedula: "79082398765", Address: "Ave. 26 #123, Nuevo Vedado, La Habana",
			Segment: customer.Occasional, Status: customer.Active, TotalSpent: 8920.25,
			LastPurchase: dayPtr("2025-01-12"), CreatedAt: day("2024-05-20"), UpdatedAt: day("2025-01-12")},
		{ID: 3, Name: "Ana Beatriz Fernández", Email: "ana.fernandez@gmail.com", Phone: "+53 5456-7890",
			Cedula: "92051876543", Address: "Calle L #789, Vedado, La Habana",
			Segment: customer.New, Status: customer.Active, TotalSpent: 2340.00,
			LastPurchase: dayPtr("2025-01-10"), CreatedAt: day("2025-01-05"), UpdatedAt: day("2025-01-10")},
		{ID: 4, Name: "Roberto Luis Martínez", Email: "roberto.martinez@empresa.cu", Phone: "+53 5567-8901",
			Cedula: "86071234567", Address: "Calle 17 #234, Vedado, La Habana",
			Segment: customer.Frequent, Status: customer.Inactive, TotalSpent: 22150.75,
			LastPurchase: dayPtr("2024-12-28"), CreatedAt: day("2023-08-10"), UpdatedAt: day("2024-12-28")},
		{ID: 5, Name: "Yolanda Pérez Sánchez", Email: "yolanda.perez@correo.cu", Phone: "+53 5678-9012",
			Cedula: "88031987654", Address: "Ave. Paseo #567, Vedado, La Habana",
			Segment: customer.Occasional, Status: customer.Blocked, TotalSpent: 5680.30,
			LastPurchase: dayPtr("2024-11-15"), CreatedAt: day("2024-02-14"), UpdatedAt: day("2024-11-20")},
		{ID: 6, Name: "Jorge Manuel Díaz", Email: "jorge.diaz@email.cu", Phone: "+53 5789-0123",
			Cedula: "91041567890", Address: "Calle G #890, Vedado, La Habana",
			Segment: customer.New, Status: customer.Active, TotalSpent: 1250.00,
			LastPurchase: dayPtr("2025-01-08"), CreatedAt: day("2025-01-02"), UpdatedAt: day("2025-01-08")},
		{ID: 7, Name: "Carmen Rosa López", Email: "carmen.lopez@correo.cu", Phone: "+53 5890-1234",
			Cedula: "84061345678", Address: "Calle 21 #345, Vedado, La Habana",
			Segment: customer.Frequent, Status: customer.Active, TotalSpent: 18920.40,
			LastPurchase: dayPtr("2025-01-14"), CreatedAt: day("2023-11-22"), UpdatedAt: day("2025-01-14")},
		{ID: 8, Name: "Pedro Antonio García", Email: "pedro.garcia@empresa.cu", Phone: "+53 5901-2345",
			Cedula: "87051876543", Address: "Ave. 23 #678, Nuevo Vedado, La Habana",
			Segment: customer.Occasional, Status: customer.Active, TotalSpent: 6750.80,
			LastPurchase: dayPtr("2025-01-11"), CreatedAt: day("2024-07-18"), UpdatedAt: day("2025-01-11")},
	}
}

// CustomerRecords returns Customers as data view records.
func CustomerRecords() []record.Record {
	cs := Customers()
	out := make([]record.Record, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ToRecord())
	}
	return out
}

type demoUser struct {
	id          int64
	name, email string
	cubanID     string
	phone       string
	role        user.Role
	status      user.Status
	warehouseID string
	lastLogin   time.Duration
	age         time.Duration
}

const dayDur = 24 * time.Hour

var demoUsers = []demoUser{
	{1, "Carlos Rodríguez Pérez", "carlos.rodriguez@wareflow.cu", "85041512345", "+53 5234-5678",
		user.Owner, user.Active, "havana-central", time.Hour, 30 * dayDur},
	{2, "María Elena González", "maria.gonzalez@wareflow.cu", "92031687654", "+53 5345-6789",
		user.Manager, user.Active, "santiago-norte", 2 * time.Hour, 25 * dayDur},
	{3, "José Antonio Martínez", "jose.martinez@wareflow.cu", "88121598765", "+53 5456-7890",
		user.Staff, user.Active, "matanzas-sur", 4 * time.Hour, 20 * dayDur},
	{4, "Ana Beatriz Fernández", "ana.fernandez@wareflow.cu", "95061234567", "+53 5567-8901",
		user.Manager, user.Inactive, "villa-clara", 3 * dayDur, 15 * dayDur},
	{5, "Roberto Luis Herrera", "roberto.herrera@wareflow.cu", "87091876543", "+53 5678-9012",
		user.Staff, user.Suspended, "camaguey-este", 7 * dayDur, 10 * dayDur},
	{6, "Carmen Rosa Díaz", "carmen.diaz@wareflow.cu", "91051345678", "+53 5789-0123",
		user.Staff, user.Active, "havana-central", 30 * time.Minute, 5 * dayDur},
}

// Users returns the six demo users, with login and creation times relative to now.
// Permissions follow each user's role template.
func Users(now time.Time) []user.User {
	out := make([]user.User, 0, len(demoUsers))
	for _, d := range demoUsers {
		w, _ := user.WarehouseByID(d.warehouseID)
		last := now.Add(-d.lastLogin)
		out = append(out, user.User{
			ID:          d.id,
			Name:        d.name,
			Email:       d.email,
			CubanID:     d.cubanID,
			Phone:       d.phone,
			Role:        d.role,
			Status:      d.status,
			WarehouseID: w.ID,
			Warehouse:   w.Name,
			LastLogin:   &last,
			CreatedAt:   now.Add(-d.age),
			Permissions: user.RoleTemplate(d.role),
		})
	}
	return out
}

// UserRecords returns Users as data view records.
func UserRecords(now time.Time) []record.Record {
	us := Users(now)
	out := make([]record.Record, 0, len(us))
	for _, u := range us {
		out = append(out, u.ToRecord())
	}
	return out
}
