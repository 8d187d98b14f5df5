package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gochi "github.com/go-chi/chi/v5"

	domcust "github.com/kailas-cloud/wareflow/internal/domain/customer"
	dompurchase "github.com/kailas-cloud/wareflow/internal/domain/purchase"
	domuser "github.com/kailas-cloud/wareflow/internal/domain/user"
	"github.com/kailas-cloud/wareflow/internal/repository/activity"
	"github.com/kailas-cloud/wareflow/internal/repository/memstore"
	"github.com/kailas-cloud/wareflow/internal/repository/seed"
	customeruc "github.com/kailas-cloud/wareflow/internal/usecase/customer"
	"github.com/kailas-cloud/wareflow/internal/usecase/dataview"
	healthuc "github.com/kailas-cloud/wareflow/internal/usecase/health"
	purchaseuc "github.com/kailas-cloud/wareflow/internal/usecase/purchase"
	useruc "github.com/kailas-cloud/wareflow/internal/usecase/user"
)

var fixedNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	engine := dataview.New(nil)
	clock := func() time.Time { return fixedNow }

	custStore := memstore.New(domcust.SchemaName, seed.CustomerRecords())
	userStore := memstore.New(domuser.SchemaName, seed.UserRecords(fixedNow))
	purchaseStore := memstore.New(dompurchase.SchemaName, seed.PurchaseRecords())

	customers := customeruc.New(customeruc.NewListing(custStore, engine), customeruc.WithClock(clock))
	purchases := purchaseuc.New(purchaseuc.NewListing(purchaseStore, engine), customers)
	users := useruc.New(useruc.NewListing(userStore, engine),
		useruc.WithClock(clock),
		useruc.WithActivityLog(activity.New(seed.UserActivity(fixedNow))),
	)

	srv := NewServer(customers, purchases, users, healthuc.New(custStore, userStore, purchaseStore), nil)
	r := gochi.NewRouter()
	srv.RegisterRoutes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealthCheck(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodGet, "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	resp := decode[healthResponse](t, rr)
	if resp.Status != healthuc.Healthy || len(resp.Checks) != 3 {
		t.Errorf("health = %+v", resp)
	}
}

func TestListCustomers_Defaults(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodGet, "/api/v1/customers", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	if rr.Header().Get("ETag") != `"1"` {
		t.Errorf("ETag = %q", rr.Header().Get("ETag"))
	}
	resp := decode[pageResponse[customerResponse]](t, rr)
	if resp.Total != 8 || resp.PageSize != 10 || len(resp.Items) != 8 {
		t.Errorf("page = total %d size %d items %d", resp.Total, resp.PageSize, len(resp.Items))
	}
	if resp.Sort.Key != domcust.FieldName || resp.Sort.Direction != "asc" {
		t.Errorf("sort = %+v", resp.Sort)
	}
	if resp.Items[0].ID != 3 {
		t.Errorf("first id = %d, want 3", resp.Items[0].ID)
	}
}

func TestListCustomers_FilterSortPage(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodGet, "/api/v1/customers?segment=frequent&sort=totalSpent&direction=desc&pageSize=10", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	resp := decode[pageResponse[customerResponse]](t, rr)
	if resp.Total != 3 {
		t.Fatalf("total = %d, want 3", resp.Total)
	}
	for i := 1; i < len(resp.Items); i++ {
		if resp.Items[i-1].TotalSpent < resp.Items[i].TotalSpent {
			t.Errorf("items not sorted by totalSpent desc: %v", resp.Items)
		}
	}
}

func TestListCustomers_BadParams(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name string
		path string
	}{
		{"page not a number", "/api/v1/customers?page=abc"},
		{"page size not offered", "/api/v1/customers?pageSize=7"},
		{"bad direction", "/api/v1/customers?sort=name&direction=sideways"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodGet, tt.path, "")
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rr.Code)
			}
		})
	}
}

func TestCreateCustomer(t *testing.T) {
	h := newTestRouter(t)
	body := `{"name":"Lucía Torres","email":"lucia.torres@correo.cu","phone":"+53 5111-2222",` +
		`"cedula":"92030412345","address":"Calle 23 #450, Vedado"}`

	rr := do(t, h, http.MethodPost, "/api/v1/customers", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	if rr.Header().Get("Location") != "/api/v1/customers/9" {
		t.Errorf("Location = %q", rr.Header().Get("Location"))
	}
	resp := decode[customerResponse](t, rr)
	if resp.Segment != "new" || resp.StatusLabel != domcust.Active.Label() || resp.LastPurchase != nil {
		t.Errorf("customer = %+v", resp)
	}
}

func TestCreateCustomer_ValidationFailed(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodPost, "/api/v1/customers", `{"name":"X","email":"nope"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rr.Code)
	}
	var resp struct {
		Code   ErrorCode         `json:"code"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != CodeValidationFailed || resp.Fields["email"] == "" || resp.Fields["phone"] == "" {
		t.Errorf("response = %+v", resp)
	}
}

func TestCreateCustomer_BadJSON(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodPost, "/api/v1/customers", `{"name":`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestGetCustomer_NotFound(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodGet, "/api/v1/customers/404", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if resp := decode[errorResponse](t, rr); resp.Code != CodeNotFound {
		t.Errorf("code = %s", resp.Code)
	}
}

func TestUpdateCustomer_RevisionConflict(t *testing.T) {
	h := newTestRouter(t)
	body := `{"name":"Lucía Torres","email":"lucia.torres@correo.cu","phone":"+53 5111-2222",` +
		`"cedula":"92030412345","address":"Calle 23 #450, Vedado"}`

	rr := do(t, h, http.MethodPut, "/api/v1/customers/1", body, "If-Match", `"7"`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rr.Code)
	}
	if rr.Header().Get("ETag") != `"1"` {
		t.Errorf("ETag = %q, want current revision", rr.Header().Get("ETag"))
	}

	rr = do(t, h, http.MethodPut, "/api/v1/customers/1", body, "If-Match", `"1"`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	if rr.Header().Get("ETag") != `"2"` {
		t.Errorf("ETag = %q", rr.Header().Get("ETag"))
	}
}

func TestUpdateCustomer_BadIfMatch(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodPut, "/api/v1/customers/1", `{}`, "If-Match", "latest")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestCustomerStats(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodGet, "/api/v1/customers/stats", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	resp := decode[customerStatsResponse](t, rr)
	if resp.Total != 8 || resp.Active != 6 || resp.Frequent != 3 {
		t.Errorf("stats = %+v", resp)
	}
}

func TestCustomerSelectionAndBulkStatus(t *testing.T) {
	h := newTestRouter(t)

	for _, body := range []string{`{"id":1}`, `{"id":"2"}`} {
		if rr := do(t, h, http.MethodPost, "/api/v1/customers/selection/toggle", body); rr.Code != http.StatusOK {
			t.Fatalf("toggle %s: status %d", body, rr.Code)
		}
	}
	sel := decode[selectionResponse](t, do(t, h, http.MethodGet, "/api/v1/customers/selection", ""))
	if sel.Count != 2 {
		t.Fatalf("selection = %+v", sel)
	}

	rr := do(t, h, http.MethodPost, "/api/v1/customers/bulk/status", `{"status":"blocked"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	resp := decode[bulkResponse](t, rr)
	if resp.Affected != 2 || resp.Action != customeruc.ActionStatus {
		t.Errorf("bulk = %+v", resp)
	}

	list := decode[pageResponse[customerResponse]](t, do(t, h, http.MethodGet, "/api/v1/customers?status=blocked", ""))
	if list.Total != 3 || len(list.Selected) != 0 {
		t.Errorf("blocked total %d selected %v", list.Total, list.Selected)
	}
}

func TestCustomerBulk_EmptySelection(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodPost, "/api/v1/customers/bulk/delete", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if resp := decode[errorResponse](t, rr); resp.Code != CodeInvalidBulkAction {
		t.Errorf("code = %s", resp.Code)
	}
}

func TestCustomerSelectVisible(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodPost, "/api/v1/customers/selection/visible?segment=frequent", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if sel := decode[selectionResponse](t, rr); sel.Count != 3 {
		t.Errorf("selected = %+v", sel)
	}

	list := decode[pageResponse[customerResponse]](t, do(t, h, http.MethodGet, "/api/v1/customers?segment=frequent", ""))
	if !list.AllVisibleSelected {
		t.Error("all visible rows should be selected")
	}

	rr = do(t, h, http.MethodDelete, "/api/v1/customers/selection", "")
	if sel := decode[selectionResponse](t, rr); sel.Count != 0 {
		t.Errorf("selection after clear = %+v", sel)
	}
}

func TestExportCustomers(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodGet, "/api/v1/customers/export?format=csv&segment=frequent", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	if !strings.Contains(rr.Header().Get("Content-Disposition"), "clientes") {
		t.Errorf("Content-Disposition = %q", rr.Header().Get("Content-Disposition"))
	}
	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	if len(lines) != 4 {
		t.Errorf("lines = %d, want header + 3", len(lines))
	}

	rr = do(t, h, http.MethodGet, "/api/v1/customers/export?format=pdf", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unknown format status = %d", rr.Code)
	}
}

func TestListUsers_FilterByRole(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodGet, "/api/v1/users?role=owner", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	resp := decode[pageResponse[userResponse]](t, rr)
	if resp.Total != 1 || resp.Items[0].ID != 1 || resp.Items[0].RoleLabel != domuser.Owner.Label() {
		t.Errorf("page = %+v", resp)
	}
}

func TestToggleUserStatus(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodPost, "/api/v1/users/5/toggle-status", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	if resp := decode[userResponse](t, rr); resp.Status != string(domuser.Active) {
		t.Errorf("status = %s, want active", resp.Status)
	}
}

func TestSetUserPermissions(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodPut, "/api/v1/users/6/permissions", `{"inventory":{"view":true}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	if resp := decode[userResponse](t, rr); resp.GrantedPermissions != 1 {
		t.Errorf("granted = %d", resp.GrantedPermissions)
	}

	rr = do(t, h, http.MethodPut, "/api/v1/users/6/permissions", `{"payroll":{"view":true}}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown section status = %d, want 422", rr.Code)
	}
}

func TestBulkUsers(t *testing.T) {
	h := newTestRouter(t)
	do(t, h, http.MethodPost, "/api/v1/users/selection/toggle", `{"id":3}`)

	rr := do(t, h, http.MethodPost, "/api/v1/users/bulk", `{"action":"export"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	var exported struct {
		Affected int            `json:"affected"`
		Items    []userResponse `json:"items"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&exported); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if exported.Affected != 1 || len(exported.Items) != 1 || exported.Items[0].ID != 3 {
		t.Errorf("export = %+v", exported)
	}

	rr = do(t, h, http.MethodPost, "/api/v1/users/bulk", `{"action":"suspend"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	u := decode[userResponse](t, do(t, h, http.MethodGet, "/api/v1/users/3", ""))
	if u.Status != string(domuser.Suspended) {
		t.Errorf("status = %s, want suspended", u.Status)
	}

	rr = do(t, h, http.MethodPost, "/api/v1/users/bulk", `{"action":"promote"}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unknown action status = %d", rr.Code)
	}
}

func TestNavigation(t *testing.T) {
	h := newTestRouter(t)

	owner := decode[[]navigationItemResponse](t, do(t, h, http.MethodGet, "/api/v1/navigation/owner", ""))
	staff := decode[[]navigationItemResponse](t, do(t, h, http.MethodGet, "/api/v1/navigation/staff", ""))
	if len(owner) <= len(staff) || len(staff) == 0 {
		t.Errorf("owner %d items, staff %d items", len(owner), len(staff))
	}

	if rr := do(t, h, http.MethodGet, "/api/v1/navigation/guest", ""); rr.Code != http.StatusNotFound {
		t.Errorf("unknown role status = %d", rr.Code)
	}
}

func TestCatalogues(t *testing.T) {
	h := newTestRouter(t)

	ws := decode[[]warehouseResponse](t, do(t, h, http.MethodGet, "/api/v1/warehouses", ""))
	if len(ws) != len(domuser.Warehouses()) {
		t.Errorf("warehouses = %d", len(ws))
	}
	perms := decode[[]permissionSectionResponse](t, do(t, h, http.MethodGet, "/api/v1/permissions", ""))
	if len(perms) != len(domuser.Catalogue()) {
		t.Errorf("sections = %d", len(perms))
	}
}

func TestIfMatch(t *testing.T) {
	tests := []struct {
		header  string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"*", 0, false},
		{`"4"`, 4, false},
		{`W/"12"`, 12, false},
		{"abc", 0, true},
		{`"0"`, 0, true},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPut, "/", http.NoBody)
		if tt.header != "" {
			req.Header.Set("If-Match", tt.header)
		}
		got, err := ifMatch(req)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ifMatch(%q) = %d, %v", tt.header, got, err)
		}
	}
}

func TestCustomerPurchases(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodGet, "/api/v1/customers/1/purchases?search=producto&pageSize=10", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	resp := decode[purchaseHistoryResponse](t, rr)
	if resp.Customer.ID != 1 || len(resp.Purchases.Items) != 8 {
		t.Fatalf("customer %d items %d", resp.Customer.ID, len(resp.Purchases.Items))
	}
	first := resp.Purchases.Items[0]
	if first.ID != "ORD-2024-008" || first.Date != "2024-04-15" || first.ProductCount != 1 {
		t.Errorf("first = %+v", first)
	}
	if resp.Purchases.Sort.Key != dompurchase.FieldDate || resp.Purchases.Sort.Direction != "desc" {
		t.Errorf("sort = %+v", resp.Purchases.Sort)
	}
	if resp.Summary.Completed != 6 || resp.Summary.TotalSpent != 10772.75 {
		t.Errorf("summary = %+v", resp.Summary)
	}
}

func TestCustomerPurchases_SortAndFilter(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodGet, "/api/v1/customers/2/purchases?status=completed&sort=amount&direction=asc", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	resp := decode[purchaseHistoryResponse](t, rr)
	var ids []string
	for _, p := range resp.Purchases.Items {
		ids = append(ids, p.ID)
	}
	want := []string{"INV-2025-002", "INV-2025-001", "INV-2024-156", "INV-2024-132"}
	if strings.Join(ids, ",") != strings.Join(want, ",") {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	if resp.Purchases.Items[0].StatusLabel != "Completada" {
		t.Errorf("label = %q", resp.Purchases.Items[0].StatusLabel)
	}
}

func TestCustomerPurchases_Errors(t *testing.T) {
	h := newTestRouter(t)

	if rr := do(t, h, http.MethodGet, "/api/v1/customers/99/purchases", ""); rr.Code != http.StatusNotFound {
		t.Errorf("unknown customer: status = %d", rr.Code)
	}
	if rr := do(t, h, http.MethodGet, "/api/v1/customers/1/purchases?pageSize=7", ""); rr.Code != http.StatusBadRequest {
		t.Errorf("page size not offered: status = %d", rr.Code)
	}
	if rr := do(t, h, http.MethodGet, "/api/v1/customers/1/purchases/export?format=pdf", ""); rr.Code != http.StatusBadRequest {
		t.Errorf("bad format: status = %d", rr.Code)
	}
}

func TestExportCustomerPurchases(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodGet, "/api/v1/customers/3/purchases/export?format=csv", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "historial-compras-3.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.Contains(rr.Body.String(), "ORD-2025-014") {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestUserActivity(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodGet, "/api/v1/users/1/activity", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	resp := decode[activityResponse](t, rr)
	if len(resp.Logins) != 5 || len(resp.Actions) != 5 || len(resp.Changes) != 4 || resp.FailedLogins != 1 {
		t.Fatalf("activity = %d logins, %d actions, %d changes, %d failed",
			len(resp.Logins), len(resp.Actions), len(resp.Changes), resp.FailedLogins)
	}
	if resp.Logins[0].At != fixedNow.Add(-time.Hour).Format(time.RFC3339) {
		t.Errorf("newest login = %q", resp.Logins[0].At)
	}

	if rr := do(t, h, http.MethodGet, "/api/v1/users/77/activity", ""); rr.Code != http.StatusNotFound {
		t.Errorf("unknown user: status = %d", rr.Code)
	}
}
