package chi

import (
	"time"

	domcust "github.com/kailas-cloud/wareflow/internal/domain/customer"
	dompurchase "github.com/kailas-cloud/wareflow/internal/domain/purchase"
	"github.com/kailas-cloud/wareflow/internal/domain/record"
	domuser "github.com/kailas-cloud/wareflow/internal/domain/user"
	"github.com/kailas-cloud/wareflow/internal/domain/view/selection"
	healthuc "github.com/kailas-cloud/wareflow/internal/usecase/health"
	"github.com/kailas-cloud/wareflow/internal/usecase/listing"
)

const dateLayout = "2006-01-02"

type sortResponse struct {
	Key       string `json:"key,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// pageResponse is one page of a list screen. In Pages, 0 marks an ellipsis.
type pageResponse[T any] struct {
	Items              []T          `json:"items"`
	Total              int          `json:"total"`
	TotalPages         int          `json:"totalPages"`
	Page               int          `json:"page"`
	PageSize           int          `json:"pageSize"`
	PageSizes          []int        `json:"pageSizes"`
	StartItem          int          `json:"startItem"`
	EndItem            int          `json:"endItem"`
	Pages              []int        `json:"pages"`
	HasPrev            bool         `json:"hasPrev"`
	HasNext            bool         `json:"hasNext"`
	Sort               sortResponse `json:"sort"`
	Selected           []string     `json:"selected"`
	AllVisibleSelected bool         `json:"allVisibleSelected"`
	Revision           int          `json:"revision"`
}

func toPageResponse[E, D any](p listing.Page[E], conv func(E) D, pageSizes []int) pageResponse[D] {
	items := make([]D, len(p.Items))
	for i, e := range p.Items {
		items[i] = conv(e)
	}
	resp := pageResponse[D]{
		Items:              items,
		Total:              p.Total,
		TotalPages:         p.TotalPages,
		Page:               p.Page,
		PageSize:           p.PageSize,
		PageSizes:          pageSizes,
		StartItem:          p.StartItem,
		EndItem:            p.EndItem,
		Pages:              p.Pages,
		HasPrev:            p.HasPrev,
		HasNext:            p.HasNext,
		Selected:           idStrings(p.Selected),
		AllVisibleSelected: p.AllVisibleSelected,
		Revision:           p.Revision,
	}
	if !p.Sort.IsZero() {
		resp.Sort = sortResponse{Key: p.Sort.Key(), Direction: string(p.Sort.Direction())}
	}
	return resp
}

type selectionResponse struct {
	Selected []string `json:"selected"`
	Count    int      `json:"count"`
}

func toSelectionResponse(sel selection.Set) selectionResponse {
	return selectionResponse{Selected: idStrings(sel.IDs()), Count: sel.Len()}
}

type toggleRequest struct {
	ID any `json:"id"`
}

type bulkResponse struct {
	Action   string   `json:"action"`
	Affected int      `json:"affected"`
	IDs      []string `json:"ids"`
	Revision int      `json:"revision,omitempty"`
	Items    any      `json:"items,omitempty"`
}

func toBulkResponse(res listing.BulkResult) bulkResponse {
	return bulkResponse{
		Action:   res.Action,
		Affected: res.Affected,
		IDs:      idStrings(res.IDs),
		Revision: res.Revision,
	}
}

type customerResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Cedula       string  `json:"cedula"`
	Address      string  `json:"address"`
	Segment      string  `json:"segment"`
	SegmentLabel string  `json:"segmentLabel"`
	Status       string  `json:"status"`
	StatusLabel  string  `json:"statusLabel"`
	TotalSpent   float64 `json:"totalSpent"`
	LastPurchase *string `json:"lastPurchase"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

func customerToResponse(c domcust.Customer) customerResponse {
	return customerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Cedula:       c.Cedula,
		Address:      c.Address,
		Segment:      string(c.Segment),
		SegmentLabel: c.Segment.Label(),
		Status:       string(c.Status),
		StatusLabel:  c.Status.Label(),
		TotalSpent:   c.TotalSpent,
		LastPurchase: formatOptional(c.LastPurchase, dateLayout),
		CreatedAt:    c.CreatedAt.Format(dateLayout),
		UpdatedAt:    c.UpdatedAt.Format(dateLayout),
	}
}

type customerStatsResponse struct {
	Total        int     `json:"total"`
	Active       int     `json:"active"`
	Frequent     int     `json:"frequent"`
	TotalRevenue float64 `json:"totalRevenue"`
}

type customerStatusRequest struct {
	Status domcust.Status `json:"status"`
}

type customerSegmentRequest struct {
	Segment domcust.Segment `json:"segment"`
}

type userResponse struct {
	ID                 int64               `json:"id"`
	Name               string              `json:"name"`
	Email              string              `json:"email"`
	CubanID            string              `json:"cubanId"`
	Phone              string              `json:"phone"`
	Role               string              `json:"role"`
	RoleLabel          string              `json:"roleLabel"`
	Status             string              `json:"status"`
	StatusLabel        string              `json:"statusLabel"`
	WarehouseID        string              `json:"warehouseId"`
	Warehouse          string              `json:"warehouse"`
	LastLogin          *string             `json:"lastLogin"`
	CreatedAt          string              `json:"createdAt"`
	Permissions        domuser.Permissions `json:"permissions"`
	GrantedPermissions int                 `json:"grantedPermissions"`
}

func userToResponse(u domuser.User) userResponse {
	return userResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		CubanID:            u.CubanID,
		Phone:              u.Phone,
		Role:               string(u.Role),
		RoleLabel:          u.Role.Label(),
		Status:             string(u.Status),
		StatusLabel:        u.Status.Label(),
		WarehouseID:        u.WarehouseID,
		Warehouse:          u.Warehouse,
		LastLogin:          formatOptional(u.LastLogin, time.RFC3339),
		CreatedAt:          u.CreatedAt.Format(time.RFC3339),
		Permissions:        u.Permissions,
		GrantedPermissions: u.Permissions.Granted(),
	}
}

type purchaseResponse struct {
	ID            string   `json:"id"`
	Date          string   `json:"date"`
	Products      []string `json:"products"`
	ProductCount  int      `json:"productCount"`
	Category      string   `json:"category"`
	Amount        float64  `json:"amount"`
	Status        string   `json:"status"`
	StatusLabel   string   `json:"statusLabel"`
	PaymentMethod string   `json:"paymentMethod"`
}

func purchaseToResponse(p dompurchase.Purchase) purchaseResponse {
	products := p.Products
	if products == nil {
		products = []string{}
	}
	return purchaseResponse{
		ID:            p.ID,
		Date:          p.Date.Format(dateLayout),
		Products:      products,
		ProductCount:  len(p.Products),
		Category:      p.Category,
		Amount:        p.Amount,
		Status:        string(p.Status),
		StatusLabel:   p.Status.Label(),
		PaymentMethod: p.PaymentMethod,
	}
}

type purchaseSummaryResponse struct {
	Transactions int     `json:"transactions"`
	Completed    int     `json:"completed"`
	TotalSpent   float64 `json:"totalSpent"`
	AverageOrder float64 `json:"averageOrder"`
}

type purchaseHistoryResponse struct {
	Customer  customerResponse               `json:"customer"`
	Summary   purchaseSummaryResponse        `json:"summary"`
	Purchases pageResponse[purchaseResponse] `json:"purchases"`
}

type loginResponse struct {
	At       string `json:"at"`
	IP       string `json:"ip"`
	Device   string `json:"device"`
	Location string `json:"location"`
	Success  bool   `json:"success"`
}

type actionResponse struct {
	At      string `json:"at"`
	Action  string `json:"action"`
	Target  string `json:"target"`
	Type    string `json:"type"`
	Details string `json:"details"`
}

type changeResponse struct {
	At          string `json:"at"`
	Change      string `json:"change"`
	Description string `json:"description"`
	ChangedBy   string `json:"changedBy"`
}

type activityResponse struct {
	Logins       []loginResponse  `json:"logins"`
	Actions      []actionResponse `json:"actions"`
	Changes      []changeResponse `json:"changes"`
	FailedLogins int              `json:"failedLogins"`
}

func activityToResponse(a domuser.Activity) activityResponse {
	resp := activityResponse{
		Logins:       make([]loginResponse, len(a.Logins)),
		Actions:      make([]actionResponse, len(a.Actions)),
		Changes:      make([]changeResponse, len(a.Changes)),
		FailedLogins: a.FailedLogins(),
	}
	for i, l := range a.Logins {
		resp.Logins[i] = loginResponse{
			At: l.At.Format(time.RFC3339), IP: l.IP, Device: l.Device, Location: l.Location, Success: l.Success,
		}
	}
	for i, ac := range a.Actions {
		resp.Actions[i] = actionResponse{
			At: ac.At.Format(time.RFC3339), Action: ac.Action, Target: ac.Target, Type: string(ac.Type), Details: ac.Details,
		}
	}
	for i, c := range a.Changes {
		resp.Changes[i] = changeResponse{
			At: c.At.Format(time.RFC3339), Change: c.Change, Description: c.Description, ChangedBy: c.ChangedBy,
		}
	}
	return resp
}

type userBulkRequest struct {
	Action string `json:"action"`
}

type navigationItemResponse struct {
	Label   string `json:"label"`
	Path    string `json:"path"`
	Icon    string `json:"icon"`
	Tooltip string `json:"tooltip"`
}

type warehouseResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type permissionSectionResponse struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Actions []string `json:"actions"`
}

type healthResponse struct {
	Status  healthuc.Status                 `json:"status"`
	Checks  map[string]healthuc.CheckResult `json:"checks"`
	Version string                          `json:"version"`
}

func idStrings(ids []record.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func formatOptional(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}
	s := t.Format(layout)
	return &s
}
