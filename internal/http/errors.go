package httpapp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mangaview/mangaview/internal/domain"
	"github.com/mangaview/mangaview/internal/http/dto"
)

// statusFor maps service and catalog errors to HTTP status codes.
func statusFor(err error) int {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers an HTML request. Internal details are logged, not shown.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error("Request failed", "path", r.URL.Path, "status", status, "error", err)
	}
	http.Error(w, http.StatusText(status), status)
}

// writeJSONError answers an API request with an ErrorResponse body.
func (h *Handler) writeJSONError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := dto.ErrorResponse{Error: http.StatusText(status)}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Error = verr.Error()
		resp.Fields = verr.ToMap()
	}
	if status >= http.StatusInternalServerError {
		h.Logger.Error("API request failed", "path", r.URL.Path, "status", status, "error", err)
	}
	h.writeJSON(w, status, resp)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Debug("Failed to write JSON response", "status", status, "error", err)
	}
}
