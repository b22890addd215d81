// Package handler exposes read-only catalog endpoints.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"imexspec/internal/catalog"
	dErrors "imexspec/pkg/domain-errors"
	"imexspec/pkg/platform/httputil"
	"imexspec/pkg/platform/sentinel"
	"imexspec/pkg/requestcontext"
)

// Handler serves the catalog routes.
type Handler struct {
	logger *slog.Logger
	store  catalog.Store
}

// New creates a catalog Handler.
func New(store catalog.Store, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, store: store}
}

// Register registers the catalog routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/catalog", h.handleListCategories)
	r.Get("/catalog/{category}", h.handleListCategory)
}

func (h *Handler) handleListCategories(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"categories": catalog.Categories(),
	})
}

func (h *Handler) handleListCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	category := catalog.Category(chi.URLParam(r, "category"))
	if !category.Valid() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown catalog category"))
		return
	}

	items, err := h.store.List(ctx, category)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown catalog category"))
			return
		}
		h.logger.ErrorContext(ctx, "failed to list catalog category",
			"category", category,
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list catalog"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"items":    items,
	})
}
