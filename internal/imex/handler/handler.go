// Package handler exposes the description-code builder endpoint.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"imexspec/internal/imex"
	"imexspec/pkg/platform/httputil"
	"imexspec/pkg/requestcontext"
)

// Handler serves the code-builder route.
type Handler struct {
	logger  *slog.Logger
	encoder *imex.Encoder
}

// New creates an imex Handler.
func New(encoder *imex.Encoder, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, encoder: encoder}
}

// Register registers the builder route with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/imex/build", h.handleBuild)
}

func (h *Handler) handleBuild(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[imex.Spec](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	httputil.WriteJSON(w, http.StatusOK, h.encoder.Build(req))
}
