package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// HandleDelete handles DELETE requests removing an index set. The
// delete_indices query parameter controls whether the physical indices are
// cleaned up as well and defaults to true.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	deleteIndices := true
	if raw := r.URL.Query().Get("delete_indices"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "delete_indices must be a boolean")
			return
		}
		deleteIndices = v
	}

	err := h.indexSets.Delete(r.Context(), id, deleteIndices, checkerFromContext(r.Context()))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
