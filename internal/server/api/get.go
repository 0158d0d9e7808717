package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// HandleGet handles GET requests for a single index set by id.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	summary, err := h.indexSets.Get(r.Context(), id, checkerFromContext(r.Context()))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
