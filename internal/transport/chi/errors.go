package chi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/wareflow/internal/domain"
	"github.com/kailas-cloud/wareflow/internal/domain/validation"
	"github.com/kailas-cloud/wareflow/internal/logger"
)

// ErrorCode is the machine-readable error code of an API error response.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest           ErrorCode = "bad_request"
	CodeNotFound             ErrorCode = "not_found"
	CodeAlreadyExists        ErrorCode = "already_exists"
	CodeInvalidConfiguration ErrorCode = "invalid_configuration"
	CodeUnknownField         ErrorCode = "unknown_field"
	CodeInvalidBulkAction    ErrorCode = "invalid_bulk_action"
	CodeValidationFailed     ErrorCode = "validation_failed"
	CodeRevisionConflict     ErrorCode = "revision_conflict"
	CodeInternalError        ErrorCode = "internal_error"
)

type errorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		revisionConflictHandler,
		validationHandler,
		unknownFieldHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, CodeAlreadyExists),
		sentinelHandler(domain.ErrInvalidConfiguration, http.StatusBadRequest, CodeInvalidConfiguration),
		sentinelHandler(domain.ErrInvalidBulkAction, http.StatusBadRequest, CodeInvalidBulkAction),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func setETag(w http.ResponseWriter, revision int) {
	w.Header().Set("ETag", strconv.Quote(strconv.Itoa(revision)))
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
		domain.ErrRevisionConflict,
		domain.ErrValidationFailed,
		domain.ErrUnknownFieldReference,
		domain.ErrInvalidConfiguration,
		domain.ErrInvalidBulkAction,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// revisionConflictHandler handles ErrRevisionConflict with ETag header and extra fields.
func revisionConflictHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrRevisionConflict) {
		return false
	}
	var rce *domain.RevisionConflictError
	if errors.As(err, &rce) {
		setETag(w, rce.CurrentRevision)
		writeJSON(w, http.StatusConflict, map[string]any{
			"code":             CodeRevisionConflict,
			"message":          msg,
			"current_revision": rce.CurrentRevision,
		})
		return true
	}
	writeError(w, http.StatusConflict, CodeRevisionConflict, msg)
	return true
}

// validationHandler reports per-field form messages.
func validationHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrValidationFailed) {
		return false
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"code":    CodeValidationFailed,
			"message": msg,
			"fields":  verr.Fields,
		})
		return true
	}
	writeError(w, http.StatusUnprocessableEntity, CodeValidationFailed, msg)
	return true
}

// unknownFieldHandler reports the offending filter or sort keys in strict mode.
func unknownFieldHandler(w http.ResponseWriter, err error, msg string) bool {
	var uerr *domain.UnknownFieldError
	if !errors.As(err, &uerr) {
		return false
	}
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"code":    CodeUnknownField,
		"message": msg,
		"kind":    uerr.Kind,
		"keys":    uerr.Names,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
