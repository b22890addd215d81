// Package handler exposes the material filter endpoint.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"imexspec/internal/materials"
	dErrors "imexspec/pkg/domain-errors"
	"imexspec/pkg/platform/httputil"
	"imexspec/pkg/platform/sentinel"
	"imexspec/pkg/requestcontext"
)

// Handler serves the material filter routes.
type Handler struct {
	logger *slog.Logger
	store  materials.Store
}

// New creates a materials Handler.
func New(store materials.Store, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, store: store}
}

// Register registers the material routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/materials/filter", h.handleFilter)
}

type filterRequest struct {
	PrimaryNorm   string                 `json:"primary_norm"`
	Role          string                 `json:"role"`
	Requirements  materials.Requirements `json:"requirements"`
	ObturatorCode string                 `json:"obturator_code,omitempty"`
}

type filterResponse struct {
	Role      materials.Role       `json:"role"`
	Materials []materials.Material `json:"materials"`
	Blocked   bool                 `json:"blocked"`
}

func (h *Handler) handleFilter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[filterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	role := materials.Role(req.Role)
	if !role.Valid() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "unknown material role"))
		return
	}
	if req.PrimaryNorm == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "primary construction standard is required"))
		return
	}

	candidates, err := h.store.ListByRole(ctx, req.PrimaryNorm, role)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "no material compatibility data for norm"))
			return
		}
		h.logger.ErrorContext(ctx, "failed to list material candidates",
			"norm_code", req.PrimaryNorm,
			"role", role,
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list materials"))
		return
	}

	var filtered []materials.Material
	if role == materials.RoleSeat && req.ObturatorCode != "" {
		obturator, err := h.store.FindByCode(ctx, req.PrimaryNorm, materials.RoleObturator, req.ObturatorCode)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "unknown obturator material"))
				return
			}
			h.logger.ErrorContext(ctx, "failed to load obturator material",
				"code", req.ObturatorCode,
				"request_id", requestID,
				"error", err.Error(),
			)
			httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to filter materials"))
			return
		}
		filtered = materials.FilterSeats(candidates, req.Requirements, &obturator)
	} else {
		filtered = materials.FilterCandidates(candidates, req.Requirements)
	}

	httputil.WriteJSON(w, http.StatusOK, filterResponse{
		Role:      role,
		Materials: filtered,
		Blocked:   materials.Blocked(filtered),
	})
}
