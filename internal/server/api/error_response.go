package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/indexkeeper/internal/common"
)

// ErrorResponse represents a standard JSON error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// WriteJSONError writes a JSON error response with the given status code
// and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	json.NewEncoder(w).Encode(response)
}

// writeServiceError maps service-layer sentinel errors to HTTP statuses.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		WriteJSONError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, common.ErrorNotFound):
		WriteJSONError(w, http.StatusNotFound, "index set not found")
	case errors.Is(err, common.ErrorConflict):
		WriteJSONError(w, http.StatusConflict, "mismatch of ids in uri path and payload")
	case errors.Is(err, common.ErrorBadRequest), errors.Is(err, common.ErrorValidation):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
		WriteJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}
