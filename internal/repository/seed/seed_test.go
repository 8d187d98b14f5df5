package seed

import (
	"testing"
	"time"

	"github.com/kailas-cloud/wareflow/internal/domain/customer"
	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/domain/user"
	"github.com/kailas-cloud/wareflow/internal/domain/validation"
)

func TestCustomers_PassFormValidation(t *testing.T) {
	for _, c := range Customers() {
		in := customer.Input{
			Name: c.Name, Email: c.Email, Phone: c.Phone, Cedula: c.Cedula,
			Address: c.Address, Segment: c.Segment, Status: c.Status,
		}
		if err := validation.Struct(in); err != nil {
			t.Errorf("customer %d: %v", c.ID, err)
		}
	}
}

func TestCustomerRecords_UniqueIDs(t *testing.T) {
	recs := CustomerRecords()
	if len(recs) != 8 {
		t.Fatalf("len = %d, want 8", len(recs))
	}
	seen := map[record.ID]bool{}
	for _, id := range record.IDs(recs, customer.FieldID) {
		if seen[id] {
			t.Errorf("duplicate id %s", id)
		}
		seen[id] = true
	}
	stats := customer.ComputeStats(recs)
	if stats.Frequent != 3 || stats.Active != 6 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestUsers_RelativeTimes(t *testing.T) {
	now := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)
	us := Users(now)
	if len(us) != 6 {
		t.Fatalf("len = %d, want 6", len(us))
	}
	if got := now.Sub(*us[0].LastLogin); got != time.Hour {
		t.Errorf("user 1 last login %v ago, want 1h", got)
	}
	if us[4].Status != user.Suspended || us[4].Warehouse != "Almacén Este Camagüey" {
		t.Errorf("user 5 = %+v", us[4])
	}
	if !us[0].Permissions.Allows("settings", "backup") || us[2].Permissions.Allows("users", "view") {
		t.Error("role templates not applied")
	}
	for _, u := range us {
		in := user.Input{Name: u.Name, Email: u.Email, CubanID: u.CubanID, Phone: u.Phone,
			Role: u.Role, Warehouse: u.WarehouseID, Status: u.Status}
		if err := in.Validate(); err != nil {
			t.Errorf("user %d: %v", u.ID, err)
		}
	}
	if len(UserRecords(now)) != 6 {
		t.Error("UserRecords length")
	}
}

func TestPurchases_BelongToDemoCustomers(t *testing.T) {
	customers := map[int64]bool{}
	for _, c := range Customers() {
		customers[c.ID] = true
	}
	seen := map[string]bool{}
	perCustomer := map[int64]int{}
	for _, p := range Purchases() {
		if !customers[p.CustomerID] {
			t.Errorf("order %s belongs to unknown customer %d", p.ID, p.CustomerID)
		}
		if seen[p.ID] {
			t.Errorf("duplicate order id %s", p.ID)
		}
		if !p.Status.IsValid() || p.Amount <= 0 || len(p.Products) == 0 {
			t.Errorf("order %+v", p)
		}
		seen[p.ID] = true
		perCustomer[p.CustomerID]++
	}
	if perCustomer[1] != 8 || perCustomer[2] != 5 {
		t.Errorf("orders per customer = %v", perCustomer)
	}
	if len(PurchaseRecords()) != len(Purchases()) {
		t.Error("PurchaseRecords length")
	}
}

func TestUserActivity_MatchesLastLogin(t *testing.T) {
	now := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)
	activity := UserActivity(now)
	if len(activity) != 6 {
		t.Fatalf("len = %d, want 6", len(activity))
	}
	for _, u := range Users(now) {
		id, _ := record.FormatID(u.ID)
		a := activity[id]
		if len(a.Logins) == 0 || !a.Logins[0].At.Equal(*u.LastLogin) {
			t.Errorf("user %d newest login does not match last login", u.ID)
		}
		for i := 1; i < len(a.Logins); i++ {
			if a.Logins[i].At.After(a.Logins[i-1].At) {
				t.Errorf("user %d logins not newest first", u.ID)
			}
		}
		if a.FailedLogins() != 1 || len(a.Actions) != 5 || len(a.Changes) != 4 {
			t.Errorf("user %d activity = %d failed, %d actions, %d changes",
				u.ID, a.FailedLogins(), len(a.Actions), len(a.Changes))
		}
	}
}
