package api

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/indexkeeper/internal/server/models"
)

// ListResponse is the body of a successful list call. Count is the size of
// the whole permitted population, not of the returned page.
type ListResponse struct {
	Count     int                       `json:"count"`
	IndexSets []*models.IndexSetSummary `json:"index_sets"`
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// HandleList handles GET requests for the permission-filtered index set
// listing. Query parameters: skip (offset) and limit, both defaulting to 0;
// limit=0 returns the whole permitted population.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip")
	if err != nil || skip < 0 {
		WriteJSONError(w, http.StatusBadRequest, "skip must be a non-negative integer")
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil || limit < 0 {
		WriteJSONError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}

	count, items, err := h.indexSets.List(r.Context(), skip, limit, checkerFromContext(r.Context()))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ListResponse{Count: count, IndexSets: items})
}
