// Package handler exposes the norm resolution and validation endpoints.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"imexspec/internal/norms"
	dErrors "imexspec/pkg/domain-errors"
	"imexspec/pkg/platform/httputil"
	"imexspec/pkg/requestcontext"
)

// Handler serves the norm routes.
type Handler struct {
	logger   *slog.Logger
	resolver *norms.Resolver
}

// New creates a norms Handler.
func New(resolver *norms.Resolver, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, resolver: resolver}
}

// Register registers the norm routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/norms/resolve", h.handleResolve)
	r.Post("/norms/validate", h.handleValidate)
}

type resolveRequest struct {
	ValveType   string `json:"valve_type"`
	ServiceType string `json:"service_type"`
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[resolveRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.resolver.Resolve(ctx, req.ValveType, req.ServiceType)
	if err != nil {
		h.logger.ErrorContext(ctx, "norm resolution failed",
			"valve_type", req.ValveType,
			"service_type", req.ServiceType,
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

type validateRequest struct {
	Configuration map[string]any `json:"configuration"`
	PrimaryNorm   string         `json:"primary_norm"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[validateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if req.PrimaryNorm == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "primary_norm is required"))
		return
	}

	result, err := h.resolver.ValidateConfiguration(ctx, req.Configuration, req.PrimaryNorm)
	if err != nil {
		h.logger.ErrorContext(ctx, "configuration validation failed",
			"primary_norm", req.PrimaryNorm,
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
