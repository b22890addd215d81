// Package handler exposes the publication gate endpoint.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"imexspec/internal/publication"
	"imexspec/pkg/platform/httputil"
	"imexspec/pkg/requestcontext"
)

// Handler serves the publication routes.
type Handler struct {
	logger    *slog.Logger
	validator *publication.Validator
}

// New creates a publication Handler.
func New(validator *publication.Validator, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, validator: validator}
}

// Register registers the publication routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/publication/validate", h.handleValidate)
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[publication.Request](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.validator.Validate(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "publication validation failed",
			"primary_norm", req.Configuration.PrimaryNorm,
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
