// Package chi exposes the admin screens as a JSON API on a chi router.
package chi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"

	gochi "github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"github.com/kailas-cloud/wareflow/internal/domain/record"
	domuser "github.com/kailas-cloud/wareflow/internal/domain/user"
	"github.com/kailas-cloud/wareflow/internal/domain/view/filter"
	"github.com/kailas-cloud/wareflow/internal/domain/view/order"
	"github.com/kailas-cloud/wareflow/internal/domain/view/selection"
	"github.com/kailas-cloud/wareflow/internal/export"
	customeruc "github.com/kailas-cloud/wareflow/internal/usecase/customer"
	healthuc "github.com/kailas-cloud/wareflow/internal/usecase/health"
	"github.com/kailas-cloud/wareflow/internal/usecase/listing"
	purchaseuc "github.com/kailas-cloud/wareflow/internal/usecase/purchase"
	useruc "github.com/kailas-cloud/wareflow/internal/usecase/user"
	"github.com/kailas-cloud/wareflow/internal/version"
)

// Query parameters that are not filter keys.
const (
	paramSort      = "sort"
	paramDirection = "direction"
	paramPage      = "page"
	paramPageSize  = "pageSize"
	paramFormat    = "format"
)

var reservedParams = []string{paramSort, paramDirection, paramPage, paramPageSize, paramFormat}

// selectionWorkspace is the selection half of a list screen.
type selectionWorkspace interface {
	Selection() selection.Set
	Toggle(ctx context.Context, id record.ID) (selection.Set, error)
	SelectVisible(ctx context.Context, q listing.Query) (selection.Set, error)
	ClearSelection() selection.Set
}

// exporter writes spreadsheet exports of a list screen.
type exporter interface {
	ExportFiltered(ctx context.Context, w io.Writer, f export.Format, q listing.Query) error
	ExportSelected(ctx context.Context, w io.Writer, f export.Format) error
}

// Server serves the admin API.
type Server struct {
	customers     *customeruc.Service
	purchases     *purchaseuc.Service
	users         *useruc.Service
	health        *healthuc.Service
	pageSizes     []int
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// Option configures a Server.
type Option func(*Server)

// WithPageSizes restricts the pageSize parameter to the given choices.
func WithPageSizes(sizes []int) Option {
	return func(s *Server) { s.pageSizes = slices.Clone(sizes) }
}

// NewServer creates an HTTP API server.
func NewServer(
	customers *customeruc.Service,
	purchases *purchaseuc.Service,
	users *useruc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
	opts ...Option,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		customers:     customers,
		purchases:     purchases,
		users:         users,
		health:        health,
		pageSizes:     []int{10, 25, 50, 100},
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterRoutes mounts the API on r. Middlewares must be registered on r first.
func (s *Server) RegisterRoutes(r gochi.Router) {
	r.Get("/health", s.HealthCheck)

	r.Route("/api/v1", func(r gochi.Router) {
		r.Get("/navigation/{role}", s.Navigation)
		r.Get("/warehouses", s.ListWarehouses)
		r.Get("/permissions", s.PermissionCatalogue)

		r.Route("/customers", func(r gochi.Router) {
			r.Get("/", s.ListCustomers)
			r.Post("/", s.CreateCustomer)
			r.Get("/stats", s.CustomerStats)
			r.Get("/export", s.exportFiltered(s.customers, customeruc.SheetName))
			s.mountSelection(r, s.customers)
			r.Post("/bulk/status", s.BulkCustomerStatus)
			r.Post("/bulk/segment", s.BulkCustomerSegment)
			r.Post("/bulk/delete", s.BulkDeleteCustomers)
			r.Get("/bulk/export", s.exportSelected(s.customers, customeruc.SheetName))
			r.Get("/{id}", s.GetCustomer)
			r.Put("/{id}", s.UpdateCustomer)
			r.Get("/{id}/purchases", s.CustomerPurchases)
			r.Get("/{id}/purchases/export", s.ExportCustomerPurchases)
		})

		r.Route("/users", func(r gochi.Router) {
			r.Get("/", s.ListUsers)
			r.Post("/", s.CreateUser)
			r.Get("/export", s.exportFiltered(s.users, useruc.SheetName))
			s.mountSelection(r, s.users)
			r.Post("/bulk", s.BulkUsers)
			r.Get("/bulk/export", s.exportSelected(s.users, useruc.SheetName))
			r.Get("/{id}", s.GetUser)
			r.Put("/{id}", s.UpdateUser)
			r.Get("/{id}/activity", s.UserActivity)
			r.Post("/{id}/toggle-status", s.ToggleUserStatus)
			r.Put("/{id}/permissions", s.SetUserPermissions)
		})
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:  report.Status,
		Checks:  report.Checks,
		Version: version.Version,
	})
}

// Navigation handles GET /navigation/{role}.
func (s *Server) Navigation(w http.ResponseWriter, r *http.Request) {
	role := domuser.Role(gochi.URLParam(r, "role"))
	if !role.IsValid() {
		writeError(w, http.StatusNotFound, CodeNotFound, "unknown role")
		return
	}

	items := domuser.NavigationFor(role)
	resp := make([]navigationItemResponse, len(items))
	for i, it := range items {
		resp[i] = navigationItemResponse{Label: it.Label, Path: it.Path, Icon: it.Icon, Tooltip: it.Tooltip}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListWarehouses handles GET /warehouses.
func (s *Server) ListWarehouses(w http.ResponseWriter, _ *http.Request) {
	ws := domuser.Warehouses()
	resp := make([]warehouseResponse, len(ws))
	for i, wh := range ws {
		resp[i] = warehouseResponse{ID: wh.ID, Name: wh.Name}
	}
	writeJSON(w, http.StatusOK, resp)
}

// PermissionCatalogue handles GET /permissions.
func (s *Server) PermissionCatalogue(w http.ResponseWriter, _ *http.Request) {
	sections := domuser.Catalogue()
	resp := make([]permissionSectionResponse, len(sections))
	for i, sec := range sections {
		resp[i] = permissionSectionResponse{Key: sec.Key, Label: sec.Label, Actions: sec.Actions}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) mountSelection(r gochi.Router, ws selectionWorkspace) {
	r.Get("/selection", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, toSelectionResponse(ws.Selection()))
	})

	r.Delete("/selection", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, toSelectionResponse(ws.ClearSelection()))
	})

	r.Post("/selection/toggle", func(w http.ResponseWriter, r *http.Request) {
		var req toggleRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
			return
		}
		id, ok := record.FormatID(req.ID)
		if !ok {
			writeError(w, http.StatusBadRequest, CodeBadRequest, "id is required")
			return
		}
		sel, err := ws.Toggle(r.Context(), id)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toSelectionResponse(sel))
	})

	// The visible page is described by the same query parameters as the list endpoint.
	r.Post("/selection/visible", func(w http.ResponseWriter, r *http.Request) {
		q, err := s.listQuery(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
			return
		}
		sel, err := ws.SelectVisible(r.Context(), q)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toSelectionResponse(sel))
	})
}

func (s *Server) exportFiltered(ex exporter, sheet string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := export.ParseFormat(r.URL.Query().Get(paramFormat))
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
			return
		}
		q, err := s.listQuery(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
			return
		}
		var buf bytes.Buffer
		if err := ex.ExportFiltered(r.Context(), &buf, f, q); err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		writeFile(w, f, sheet, buf.Bytes())
	}
}

func (s *Server) exportSelected(ex exporter, sheet string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := export.ParseFormat(r.URL.Query().Get(paramFormat))
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
			return
		}
		var buf bytes.Buffer
		if err := ex.ExportSelected(r.Context(), &buf, f); err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		writeFile(w, f, sheet+"-seleccion", buf.Bytes())
	}
}

func writeFile(w http.ResponseWriter, f export.Format, base string, data []byte) {
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Filename(base)))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// listQuery reads search, filter keys, sort, direction, page and pageSize.
// Every parameter that is not reserved is passed through as a filter key.
func (s *Server) listQuery(r *http.Request) (listing.Query, error) {
	values := r.URL.Query()
	q := listing.Query{
		Filters:   filter.Config{},
		SortKey:   values.Get(paramSort),
		Direction: order.Direction(values.Get(paramDirection)),
	}
	for key, vals := range values {
		if slices.Contains(reservedParams, key) || len(vals) == 0 {
			continue
		}
		q.Filters[key] = vals[0]
	}

	var number, size *int
	if err := runtime.BindQueryParameter("form", true, false, paramPage, values, &number); err != nil {
		return listing.Query{}, fmt.Errorf("page must be an integer: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, paramPageSize, values, &size); err != nil {
		return listing.Query{}, fmt.Errorf("pageSize must be an integer: %w", err)
	}
	if number != nil {
		q.Page = *number
	}
	if size != nil {
		n := *size
		if n > 0 && len(s.pageSizes) > 0 && !slices.Contains(s.pageSizes, n) {
			return listing.Query{}, fmt.Errorf("pageSize must be one of %v, got %d", s.pageSizes, n)
		}
		q.PageSize = n
	}
	return q, nil
}

// ifMatch reads the expected revision from If-Match. Absent or "*" skips the check.
func ifMatch(r *http.Request) (int, error) {
	h := strings.TrimSpace(r.Header.Get("If-Match"))
	if h == "" || h == "*" {
		return listing.AnyRevision, nil
	}
	h = strings.Trim(strings.TrimPrefix(h, "W/"), `"`)
	rev, err := strconv.Atoi(h)
	if err != nil || rev <= 0 {
		return 0, fmt.Errorf("If-Match must be a revision number, got %q", r.Header.Get("If-Match"))
	}
	return rev, nil
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

func pathID(r *http.Request) record.ID {
	return record.ID(gochi.URLParam(r, "id"))
}
