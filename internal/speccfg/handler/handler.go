// Package handler exposes the specification draft endpoints.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"imexspec/internal/calc"
	"imexspec/internal/publication"
	"imexspec/internal/speccfg"
	"imexspec/pkg/platform/httputil"
	"imexspec/pkg/requestcontext"
)

// Handler serves the specification draft routes.
type Handler struct {
	logger  *slog.Logger
	service *speccfg.Service
}

// New creates a speccfg Handler.
func New(service *speccfg.Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the draft routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/specs", h.handleCreate)
	r.Get("/specs", h.handleList)
	r.Get("/specs/{id}", h.handleGet)
	r.Put("/specs/{id}", h.handleSave)
	r.Post("/specs/{id}/submit", h.handleSubmit)
	r.Post("/specs/{id}/approve", h.handleApprove)
	r.Post("/specs/{id}/reject", h.handleReject)
	r.Post("/specs/{id}/publish", h.handlePublish)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	draft, err := h.service.Create(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "draft creation failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, draft)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	status := speccfg.Status(r.URL.Query().Get("status"))

	drafts, err := h.service.List(ctx, status, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "draft listing failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, drafts)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	draft, err := h.service.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, draft)
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	cfg, ok := httputil.DecodeAndPrepare[speccfg.ValveConfiguration](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	draft, err := h.service.Save(ctx, chi.URLParam(r, "id"), cfg)
	if err != nil {
		h.logger.ErrorContext(ctx, "draft save failed",
			"draft_id", chi.URLParam(r, "id"),
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, draft)
}

// submitRequest optionally carries a SIL verification to feed the gate.
type submitRequest struct {
	SILResult *calc.SILResult `json:"sil_result,omitempty"`
}

// submitResponse pairs the updated draft with the gate report so the client
// can show the per-check breakdown.
type submitResponse struct {
	Draft      speccfg.Draft      `json:"draft"`
	Validation publication.Result `json:"validation"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req submitRequest
	if r.ContentLength > 0 {
		var ok bool
		req, ok = httputil.DecodeAndPrepare[submitRequest](w, r, h.logger, ctx, requestID)
		if !ok {
			return
		}
	}

	draft, result, err := h.service.Submit(ctx, chi.URLParam(r, "id"), req.SILResult)
	if err != nil {
		h.logger.WarnContext(ctx, "draft submission refused",
			"draft_id", chi.URLParam(r, "id"),
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, submitResponse{Draft: draft, Validation: result})
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	draft, err := h.service.Approve(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, draft)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[rejectRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	draft, err := h.service.Reject(ctx, chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, draft)
}

func (h *Handler) handlePublish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	draft, err := h.service.Publish(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, draft)
}
