package api

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API routes with the given router.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	s := router.PathPrefix("/system/indices/index_sets").Subrouter()
	s.Use(h.authMiddleware)

	s.HandleFunc("", h.HandleList).Methods("GET")
	s.HandleFunc("", h.HandleCreate).Methods("POST")
	s.HandleFunc("/{id}", h.HandleGet).Methods("GET")
	s.HandleFunc("/{id}", h.HandleUpdate).Methods("PUT")
	s.HandleFunc("/{id}", h.HandleDelete).Methods("DELETE")
}
