// Package handler exposes the rule evaluation endpoint.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"imexspec/internal/rules"
	"imexspec/pkg/platform/httputil"
	"imexspec/pkg/requestcontext"
)

// Handler serves the rule engine routes.
type Handler struct {
	logger *slog.Logger
	engine *rules.Engine
}

// New creates a rules Handler.
func New(engine *rules.Engine, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, engine: engine}
}

// Register registers the rule routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/rules/evaluate", h.handleEvaluate)
}

type evaluateRequest struct {
	ValveType string         `json:"valve_type"`
	Values    map[string]any `json:"values"`
}

func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[evaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.engine.Evaluate(ctx, req.ValveType, req.Values)
	if err != nil {
		h.logger.ErrorContext(ctx, "rule evaluation failed",
			"valve_type", req.ValveType,
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
