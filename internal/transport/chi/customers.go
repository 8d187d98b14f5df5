package chi

import (
	"fmt"
	"net/http"

	domcust "github.com/kailas-cloud/wareflow/internal/domain/customer"
)

// ListCustomers handles GET /customers.
func (s *Server) ListCustomers(w http.ResponseWriter, r *http.Request) {
	q, err := s.listQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	p, err := s.customers.List(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setETag(w, p.Revision)
	writeJSON(w, http.StatusOK, toPageResponse(p, customerToResponse, s.pageSizes))
}

// CreateCustomer handles POST /customers.
func (s *Server) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var in domcust.Input
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	c, rev, err := s.customers.Create(r.Context(), in)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setETag(w, rev)
	w.Header().Set("Location", fmt.Sprintf("/api/v1/customers/%d", c.ID))
	writeJSON(w, http.StatusCreated, customerToResponse(c))
}

// GetCustomer handles GET /customers/{id}.
func (s *Server) GetCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := s.customers.Get(r.Context(), pathID(r))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customerToResponse(c))
}

// UpdateCustomer handles PUT /customers/{id}.
func (s *Server) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	expected, err := ifMatch(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	var in domcust.Input
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	c, rev, err := s.customers.Update(r.Context(), pathID(r), expected, in)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setETag(w, rev)
	writeJSON(w, http.StatusOK, customerToResponse(c))
}

// CustomerStats handles GET /customers/stats.
func (s *Server) CustomerStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.customers.Stats(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customerStatsResponse{
		Total:        st.Total,
		Active:       st.Active,
		Frequent:     st.Frequent,
		TotalRevenue: st.TotalRevenue,
	})
}

// BulkCustomerStatus handles POST /customers/bulk/status.
func (s *Server) BulkCustomerStatus(w http.ResponseWriter, r *http.Request) {
	expected, err := ifMatch(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	var req customerStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	res, err := s.customers.BulkStatus(r.Context(), expected, req.Status)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setETag(w, res.Revision)
	writeJSON(w, http.StatusOK, toBulkResponse(res))
}

// BulkCustomerSegment handles POST /customers/bulk/segment.
func (s *Server) BulkCustomerSegment(w http.ResponseWriter, r *http.Request) {
	expected, err := ifMatch(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	var req customerSegmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	res, err := s.customers.BulkSegment(r.Context(), expected, req.Segment)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setETag(w, res.Revision)
	writeJSON(w, http.StatusOK, toBulkResponse(res))
}

// BulkDeleteCustomers handles POST /customers/bulk/delete.
func (s *Server) BulkDeleteCustomers(w http.ResponseWriter, r *http.Request) {
	expected, err := ifMatch(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	res, err := s.customers.BulkDelete(r.Context(), expected)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setETag(w, res.Revision)
	writeJSON(w, http.StatusOK, toBulkResponse(res))
}
