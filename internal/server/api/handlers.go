// Package api exposes the index set management REST API.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/indexkeeper/internal/common"
	"github.com/dmitrijs2005/indexkeeper/internal/logging"
	"github.com/dmitrijs2005/indexkeeper/internal/server/auth"
	"github.com/dmitrijs2005/indexkeeper/internal/server/models"
)

// IndexSetManager is the service surface the handlers call. Satisfied by
// *services.IndexSetService.
type IndexSetManager interface {
	List(ctx context.Context, skip, limit int, checker auth.Checker) (int, []*models.IndexSetSummary, error)
	Get(ctx context.Context, id string, checker auth.Checker) (*models.IndexSetSummary, error)
	Create(ctx context.Context, summary *models.IndexSetSummary, checker auth.Checker) (*models.IndexSetSummary, error)
	Update(ctx context.Context, id string, summary *models.IndexSetSummary, checker auth.Checker) (*models.IndexSetSummary, error)
	Delete(ctx context.Context, id string, deleteIndices bool, checker auth.Checker) error
}

// Handler provides HTTP handlers for the index set API.
type Handler struct {
	indexSets IndexSetManager
	logger    logging.Logger
	jwtSecret []byte
}

// NewHandler creates a new API handler with dependency injection.
func NewHandler(indexSets IndexSetManager, logger logging.Logger, secretKey string) *Handler {
	return &Handler{
		indexSets: indexSets,
		logger:    logger.With("module", "api"),
		jwtSecret: []byte(secretKey),
	}
}

type ctxKey string

const checkerKey ctxKey = "permissionChecker"

// authMiddleware validates the bearer token and stores the resulting
// permission checker on the request context. Requests without a valid
// token never reach a handler.
func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthHeaderName)
		token, ok := strings.CutPrefix(header, common.AuthSchemePrefix)
		if !ok || token == "" {
			WriteJSONError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		checker, err := auth.CheckerFromToken(token, h.jwtSecret)
		if err != nil {
			h.logger.Warn(r.Context(), "rejected api token", "error", err.Error())
			WriteJSONError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), checkerKey, checker)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// checkerFromContext returns the permission checker stored by
// authMiddleware. Requests that bypass the middleware get a deny-all
// checker.
func checkerFromContext(ctx context.Context) auth.Checker {
	if c, ok := ctx.Value(checkerKey).(auth.Checker); ok {
		return c
	}
	return auth.CheckerFunc(func(action, id string) bool { return false })
}
