package server

import (
	"encoding/json"
	"net/http"

	"github.com/vango-dev/gmvoice/internal/errors"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Code       string `json:"code,omitempty"`
	Error      string `json:"error"`
	Detail     string `json:"detail,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// statusFor maps error codes to HTTP status codes.
var statusFor = map[string]int{
	"E101": http.StatusNotFound,
	"E104": http.StatusServiceUnavailable,
	"E110": http.StatusBadRequest,
	"E111": http.StatusRequestEntityTooLarge,
	"E201": http.StatusServiceUnavailable,
	"E301": http.StatusBadRequest,
	"E303": http.StatusNotFound,
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes err as JSON. Coded errors keep their message and hint;
// anything else is reported as an internal error.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	coded, ok := errors.AsError(err)
	if !ok {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
		return
	}

	status, ok := statusFor[coded.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "code", coded.Code, "error", err)
	}
	writeJSON(w, status, errorBody{
		Code:       coded.Code,
		Error:      coded.Message,
		Detail:     coded.Detail,
		Suggestion: coded.Suggestion,
	})
}
