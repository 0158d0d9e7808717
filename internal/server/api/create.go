package api

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/indexkeeper/internal/server/models"
)

// HandleCreate handles POST requests creating a new index set. The payload
// must not carry an id.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var payload models.IndexSetSummary
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := h.indexSets.Create(r.Context(), &payload, checkerFromContext(r.Context()))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}
