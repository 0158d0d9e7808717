package api

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/indexkeeper/internal/server/models"
	"github.com/gorilla/mux"
)

// HandleUpdate handles PUT requests replacing an existing index set. An id
// in the payload must match the id in the path.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload models.IndexSetSummary
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := h.indexSets.Update(r.Context(), id, &payload, checkerFromContext(r.Context()))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}
