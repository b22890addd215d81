// Package handler exposes the norm-system health endpoint.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"imexspec/internal/health"
	"imexspec/pkg/platform/httputil"
)

// Handler serves the system health route.
type Handler struct {
	logger  *slog.Logger
	service *health.Service
}

// New creates a health Handler.
func New(service *health.Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the health route with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health/system", h.handleSystem)
}

// handleSystem runs a fresh evaluation so operators always see current state.
// A BLOCKED system still answers 200; the verdict lives in the body.
func (h *Handler) handleSystem(w http.ResponseWriter, r *http.Request) {
	report := h.service.Check(r.Context())
	httputil.WriteJSON(w, http.StatusOK, report)
}
