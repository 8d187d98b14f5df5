package chi

import (
	"fmt"
	"net/http"

	domuser "github.com/kailas-cloud/wareflow/internal/domain/user"
	useruc "github.com/kailas-cloud/wareflow/internal/usecase/user"
)

// ListUsers handles GET /users.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	q, err := s.listQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	p, err := s.users.List(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setETag(w, p.Revision)
	writeJSON(w, http.StatusOK, toPageResponse(p, userToResponse, s.pageSizes))
}

// CreateUser handles POST /users.
func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in domuser.Input
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	u, rev, err := s.users.Create(r.Context(), in)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setETag(w, rev)
	w.Header().Set("Location", fmt.Sprintf("/api/v1/users/%d", u.ID))
	writeJSON(w, http.StatusCreated, userToResponse(u))
}

// GetUser handles GET /users/{id}.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.Get(r.Context(), pathID(r))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(u))
}

// UserActivity handles GET /users/{id}/activity.
func (s *Server) UserActivity(w http.ResponseWriter, r *http.Request) {
	a, err := s.users.Activity(r.Context(), pathID(r))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activityToResponse(a))
}

// UpdateUser handles PUT /users/{id}.
func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request) {
	expected, err := ifMatch(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	var in domuser.Input
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	u, rev, err := s.users.Update(r.Context(), pathID(r), expected, in)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setETag(w, rev)
	writeJSON(w, http.StatusOK, userToResponse(u))
}

// ToggleUserStatus handles POST /users/{id}/toggle-status.
func (s *Server) ToggleUserStatus(w http.ResponseWriter, r *http.Request) {
	expected, err := ifMatch(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	u, rev, err := s.users.ToggleStatus(r.Context(), pathID(r), expected)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setETag(w, rev)
	writeJSON(w, http.StatusOK, userToResponse(u))
}

// SetUserPermissions handles PUT /users/{id}/permissions.
func (s *Server) SetUserPermissions(w http.ResponseWriter, r *http.Request) {
	expected, err := ifMatch(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	var p domuser.Permissions
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	u, rev, err := s.users.SetPermissions(r.Context(), pathID(r), expected, p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setETag(w, rev)
	writeJSON(w, http.StatusOK, userToResponse(u))
}

// BulkUsers handles POST /users/bulk.
func (s *Server) BulkUsers(w http.ResponseWriter, r *http.Request) {
	expected, err := ifMatch(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	var req userBulkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	out, err := s.users.BulkAction(r.Context(), req.Action, expected)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := toBulkResponse(out.BulkResult)
	if req.Action == useruc.ActionExport {
		items := make([]userResponse, 0, len(out.Records))
		for _, rec := range out.Records {
			u, err := domuser.FromRecord(rec)
			if err != nil {
				s.handleDomainError(w, r, err)
				return
			}
			items = append(items, userToResponse(u))
		}
		resp.Items = items
	} else {
		setETag(w, out.Revision)
	}
	writeJSON(w, http.StatusOK, resp)
}
