// Package handler exposes the torque and SIL calculator endpoints.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"imexspec/internal/calc"
	"imexspec/pkg/platform/httputil"
	"imexspec/pkg/requestcontext"
)

// Handler serves the calculator routes.
type Handler struct {
	logger  *slog.Logger
	service *calc.Service
}

// New creates a calc Handler.
func New(service *calc.Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the calculator routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/calc/torque", h.handleTorque)
	r.Post("/calc/sil", h.handleSIL)
}

func (h *Handler) handleTorque(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[calc.TorqueInput](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Torque(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "torque calculation failed",
			"seat_material", req.SeatMaterial,
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleSIL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[calc.SILInput](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.SIL(req)
	if err != nil {
		h.logger.WarnContext(ctx, "sil verification rejected",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
