// Package speccfg owns specification drafts: the working configuration, its
// derived description code, and the review lifecycle up to publication.
package speccfg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"imexspec/internal/calc"
	"imexspec/internal/imex"
	"imexspec/internal/publication"
	dErrors "imexspec/pkg/domain-errors"
	"imexspec/pkg/platform/audit"
	"imexspec/pkg/platform/sentinel"
	"imexspec/pkg/requestcontext"
)

// HealthGate reports whether the norm system currently accepts new drafts.
type HealthGate interface {
	WritesAllowed() bool
}

// Service coordinates draft persistence, the encoder, the publication gate
// and the decision log.
type Service struct {
	store     Store
	gate      HealthGate
	validator *publication.Validator
	encoder   *imex.Encoder
	recorder  *audit.Recorder
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a draft Service. recorder may be nil.
func NewService(store Store, gate HealthGate, validator *publication.Validator, encoder *imex.Encoder, recorder *audit.Recorder, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		gate:      gate,
		validator: validator,
		encoder:   encoder,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

// Create opens an empty draft. Refused while the norm system is BLOCKED:
// a specification started against a broken catalog is worthless.
func (s *Service) Create(ctx context.Context) (Draft, error) {
	if !s.gate.WritesAllowed() {
		return Draft{}, dErrors.New(dErrors.CodeUnavailable, "sistema normativo bloqueado, criação de especificação suspensa")
	}

	now := s.now().UTC()
	build := s.encoder.Build(imex.Spec{})
	d := Draft{
		ID:            uuid.NewString(),
		Status:        StatusIncomplete,
		ImexCode:      build.Value,
		MissingFields: build.Missing,
		Configuration: ValveConfiguration{},
		CreatedBy:     requestcontext.Actor(ctx),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Create(ctx, d); err != nil {
		return Draft{}, storeError("create draft", err)
	}
	return d, nil
}

// Get loads one draft.
func (s *Service) Get(ctx context.Context, id string) (Draft, error) {
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return Draft{}, storeError("load draft", err)
	}
	return d, nil
}

// List returns drafts, optionally filtered by status.
func (s *Service) List(ctx context.Context, status Status, limit int) ([]Draft, error) {
	drafts, err := s.store.List(ctx, status, limit)
	if err != nil {
		return nil, storeError("list drafts", err)
	}
	return drafts, nil
}

// Save replaces the draft's configuration and re-derives code, missing list
// and the INCOMPLETO/DRAFT status. Editing a rejected draft reopens it.
func (s *Service) Save(ctx context.Context, id string, cfg ValveConfiguration) (Draft, error) {
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return Draft{}, storeError("load draft", err)
	}
	if !d.Status.Editable() {
		return Draft{}, dErrors.New(dErrors.CodeConflict,
			fmt.Sprintf("especificação %s não pode ser editada", d.Status))
	}

	build := s.encoder.Build(cfg.ImexSpec())

	next := StatusIncomplete
	if build.IsComplete {
		next = StatusDraft
	}
	if !CanTransition(d.Status, next) {
		return Draft{}, dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("transição %s → %s não permitida", d.Status, next))
	}

	reopened := d.Status == StatusRejected
	d.Configuration = cfg
	d.ImexCode = build.Value
	d.MissingFields = build.Missing
	d.IsComplete = build.IsComplete
	d.Status = next
	if reopened {
		d.RejectionReason = ""
	}
	d.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, d); err != nil {
		return Draft{}, storeError("save draft", err)
	}
	s.record(ctx, d, audit.KindConfigurationSaved, string(next), nil)
	return d, nil
}

// Submit runs the full publication gate and, when it passes, assigns the
// specification code and moves the draft to SUBMITTED. The status change and
// its audit trail commit atomically where the store supports transactions.
func (s *Service) Submit(ctx context.Context, id string, silResult *calc.SILResult) (Draft, publication.Result, error) {
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return Draft{}, publication.Result{}, storeError("load draft", err)
	}
	if !CanTransition(d.Status, StatusSubmitted) {
		return Draft{}, publication.Result{}, dErrors.New(dErrors.CodeConflict,
			fmt.Sprintf("especificação em %s não pode ser submetida", d.Status))
	}
	if !d.IsComplete {
		return Draft{}, publication.Result{}, dErrors.New(dErrors.CodeValidation,
			"especificação incompleta: "+strings.Join(d.MissingFields, ", "))
	}

	result, err := s.validator.Validate(ctx, publication.Request{
		Configuration: d.Configuration.PublicationConfig(),
		SILResult:     silResult,
	})
	if err != nil {
		return Draft{}, publication.Result{}, err
	}
	if !result.CanPublish {
		return d, result, dErrors.New(dErrors.CodeValidation,
			"especificação não passou nas validações: "+strings.Join(result.BlockedBy, ", "))
	}

	d.SpecCode = s.specCode(d.Configuration.ValveType)
	d.Status = StatusSubmitted
	d.UpdatedAt = s.now().UTC()

	err = s.store.Transact(ctx, func(ctx context.Context) error {
		if err := s.store.Update(ctx, d); err != nil {
			return storeError("submit draft", err)
		}
		s.record(ctx, d, audit.KindStatusTransition, string(StatusSubmitted), map[string]any{
			"spec_code":        d.SpecCode,
			"coverage_percent": result.CoveragePercent,
		})
		return nil
	})
	if err != nil {
		return Draft{}, publication.Result{}, err
	}
	return d, result, nil
}

// Approve moves a submitted draft to APPROVED.
func (s *Service) Approve(ctx context.Context, id string) (Draft, error) {
	return s.transition(ctx, id, StatusApproved, "")
}

// Reject moves a submitted draft to REJECTED with a mandatory reason.
func (s *Service) Reject(ctx context.Context, id, reason string) (Draft, error) {
	if strings.TrimSpace(reason) == "" {
		return Draft{}, dErrors.New(dErrors.CodeBadRequest, "motivo da rejeição é obrigatório")
	}
	return s.transition(ctx, id, StatusRejected, reason)
}

// Publish moves an approved draft to PUBLISHED, the terminal state.
func (s *Service) Publish(ctx context.Context, id string) (Draft, error) {
	return s.transition(ctx, id, StatusPublished, "")
}

func (s *Service) transition(ctx context.Context, id string, to Status, reason string) (Draft, error) {
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return Draft{}, storeError("load draft", err)
	}
	if !CanTransition(d.Status, to) {
		return Draft{}, dErrors.New(dErrors.CodeConflict,
			fmt.Sprintf("transição %s → %s não permitida", d.Status, to))
	}

	d.Status = to
	d.RejectionReason = reason
	d.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, d); err != nil {
		return Draft{}, storeError("update draft status", err)
	}

	var detail map[string]any
	if reason != "" {
		detail = map[string]any{"reason": reason}
	}
	s.record(ctx, d, audit.KindStatusTransition, string(to), detail)
	return d, nil
}

// specCode derives the published specification identifier:
// IMEX-{valveType}-{base36 timestamp}.
func (s *Service) specCode(valveType string) string {
	stamp := strings.ToUpper(strconv.FormatInt(s.now().UnixMilli(), 36))
	return fmt.Sprintf("IMEX-%s-%s", valveType, stamp)
}

func (s *Service) record(ctx context.Context, d Draft, kind audit.Kind, outcome string, detail map[string]any) {
	if s.recorder == nil {
		return
	}
	subject := d.SpecCode
	if subject == "" {
		subject = d.ID
	}
	err := s.recorder.Record(ctx, audit.Event{
		Kind:      kind,
		Actor:     requestcontext.Actor(ctx),
		Subject:   subject,
		Outcome:   outcome,
		Detail:    detail,
		RequestID: requestcontext.RequestID(ctx),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "decision log append failed",
			"draft_id", d.ID,
			"error", err.Error(),
		)
	}
}

func storeError(op string, err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(dErrors.CodeNotFound, op, err)
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(dErrors.CodeConflict, op, err)
	default:
		return dErrors.Wrap(dErrors.CodeInternal, op, err)
	}
}
