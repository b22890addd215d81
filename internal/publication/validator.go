// Package publication implements the fail-closed publication gate: a fixed
// ordered sequence of conformity checks with no bypass. A configuration can
// be published only when every evaluated check passes; absence of data fails
// a check, it never skips one.
package publication

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"imexspec/internal/norms"
	dErrors "imexspec/pkg/domain-errors"
	"imexspec/pkg/platform/audit"
	pstrings "imexspec/pkg/platform/strings"
)

// Requirement norms referenced by the conditional checks.
const (
	normLowEmission = "ISO_15848_1"
	normSIL         = "IEC_61508"
)

// Seat polymers that never pass a fire test, regardless of catalog data.
var polymerSeats = map[string]bool{
	"PTFE":   true,
	"RPTFE":  true,
	"NYLON":  true,
	"PEEK":   true,
	"DEVLON": true,
}

// Validator runs the publication check sequence against the active norm
// catalog and records every verdict in the decision log.
type Validator struct {
	store    norms.Store
	recorder *audit.Recorder
	logger   *slog.Logger
	metrics  *Metrics
	tracer   trace.Tracer
}

// NewValidator creates a Validator. recorder and metrics may be nil.
func NewValidator(store norms.Store, recorder *audit.Recorder, logger *slog.Logger, metrics *Metrics) *Validator {
	return &Validator{
		store:    store,
		recorder: recorder,
		logger:   logger,
		metrics:  metrics,
		tracer:   otel.Tracer("imexspec.publication"),
	}
}

// Validate runs all checks in order and derives the publication verdict.
func (v *Validator) Validate(ctx context.Context, req Request) (Result, error) {
	ctx, span := v.tracer.Start(ctx, "publication.Validate", trace.WithAttributes(
		attribute.String("valve_type", req.Configuration.ValveType),
		attribute.String("primary_norm", req.Configuration.PrimaryNorm),
	))
	defer span.End()

	pack, err := v.store.ActivePack(ctx)
	if err != nil {
		v.metrics.IncrementValidation("error")
		return Result{}, dErrors.Wrap(dErrors.CodeUnavailable, "active norm pack unavailable", err)
	}

	cfg := req.Configuration
	result := Result{ApplicableNorms: []string{cfg.PrimaryNorm}}

	v.checkPrimaryNorm(&result, pack, cfg)
	v.checkBasicFields(&result, cfg)
	v.checkFlangeFace(&result, cfg)
	v.checkMaterials(&result, cfg)
	v.checkNACE(&result, pack, cfg)
	v.checkFireTest(&result, cfg)
	v.checkLowEmission(&result, cfg)
	v.checkSIL(&result, req)
	v.checkActuation(&result, cfg)

	var passed, pending int
	for _, c := range result.Checks {
		switch c.Status {
		case StatusPass:
			passed++
		case StatusPending:
			pending++
		}
	}
	if len(result.Checks) > 0 {
		result.CoveragePercent = 100 * float64(passed) / float64(len(result.Checks))
	}
	result.CanPublish = len(result.BlockedBy) == 0 && pending == 0
	result.ApplicableNorms = pstrings.DedupeAndTrim(result.ApplicableNorms)

	span.SetAttributes(
		attribute.Bool("can_publish", result.CanPublish),
		attribute.Float64("coverage_percent", result.CoveragePercent),
	)

	verdict := "publishable"
	if !result.CanPublish {
		verdict = "blocked"
	}
	v.metrics.IncrementValidation(verdict)
	for _, id := range result.BlockedBy {
		v.metrics.IncrementCheckFail(id)
	}

	v.recordDecision(ctx, cfg, result, verdict)

	return result, nil
}

func (v *Validator) recordDecision(ctx context.Context, cfg Configuration, result Result, verdict string) {
	if v.recorder == nil {
		return
	}
	subject := cfg.PrimaryNorm + "/" + cfg.ValveType
	err := v.recorder.Record(ctx, audit.Event{
		Kind:    audit.KindPublicationDecision,
		Subject: subject,
		Outcome: verdict,
		Detail: map[string]any{
			"blocked_by":       result.BlockedBy,
			"coverage_percent": result.CoveragePercent,
			"applicable_norms": result.ApplicableNorms,
		},
	})
	if err != nil {
		v.logger.WarnContext(ctx, "decision log append failed",
			"subject", subject,
			"error", err.Error(),
		)
	}
}

func (v *Validator) checkPrimaryNorm(result *Result, pack norms.Pack, cfg Configuration) {
	norm, ok := pack.Norms[cfg.PrimaryNorm]
	if !ok {
		fail(result, Check{
			ID:      CheckPrimaryNorm,
			Rule:    "Norma de construção primária",
			Status:  StatusFail,
			Message: "Norma primária não encontrada no catálogo",
		})
		return
	}
	pass(result, Check{
		ID:         CheckPrimaryNorm,
		Rule:       "Norma de construção primária",
		Status:     StatusPass,
		Message:    fmt.Sprintf("%s - %s", norm.Code, norm.Title),
		SourceNorm: norm.Code,
	})
}

func (v *Validator) checkBasicFields(result *Result, cfg Configuration) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"diameterNPS", cfg.DiameterNPS},
		{"pressureClass", cfg.PressureClass},
		{"endType", cfg.EndType},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		fail(result, Check{
			ID:      CheckBasicFields,
			Rule:    "Campos básicos obrigatórios",
			Status:  StatusFail,
			Message: "Campos faltando: " + strings.Join(missing, ", "),
		})
		return
	}
	pass(result, Check{
		ID:      CheckBasicFields,
		Rule:    "Campos básicos obrigatórios",
		Status:  StatusPass,
		Message: "Todos os campos básicos preenchidos",
	})
}

// checkFlangeFace is only evaluated for flanged ends; its absence for other
// end types counts as a pass.
func (v *Validator) checkFlangeFace(result *Result, cfg Configuration) {
	if !strings.HasPrefix(cfg.EndType, "FLANGEADO") {
		return
	}
	if cfg.FlangeFace == "" && cfg.EndType == "FLANGEADO" {
		fail(result, Check{
			ID:         CheckFlangeFace,
			Rule:       "Face do flange obrigatória",
			Status:     StatusFail,
			Message:    "Extremidade flangeada requer seleção de face",
			SourceNorm: "ASME_B16_34",
		})
		return
	}
	face := cfg.FlangeFace
	if face == "" {
		// Face-specific end types (FLANGEADO_RF etc.) carry the face inline.
		face = strings.TrimPrefix(cfg.EndType, "FLANGEADO_")
	}
	pass(result, Check{
		ID:         CheckFlangeFace,
		Rule:       "Face do flange obrigatória",
		Status:     StatusPass,
		Message:    fmt.Sprintf("Face %s selecionada", face),
		SourceNorm: "ASME_B16_34",
	})
}

func (v *Validator) checkMaterials(result *Result, cfg Configuration) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"bodyMaterial", cfg.BodyMaterial},
		{"obturatorMaterial", cfg.ObturatorMaterial},
		{"seatMaterial", cfg.SeatMaterial},
		{"stemMaterial", cfg.StemMaterial},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		fail(result, Check{
			ID:      CheckMaterials,
			Rule:    "Materiais obrigatórios",
			Status:  StatusFail,
			Message: "Materiais faltando: " + strings.Join(missing, ", "),
		})
		return
	}
	pass(result, Check{
		ID:      CheckMaterials,
		Rule:    "Materiais obrigatórios",
		Status:  StatusPass,
		Message: "Todos os materiais selecionados",
	})
}

// checkNACE fails closed: a missing NACE norm or an unqualified body material
// both block, there is no silent skip when qualification data is absent.
func (v *Validator) checkNACE(result *Result, pack norms.Pack, cfg Configuration) {
	if !cfg.NaceRequired {
		return
	}
	result.ApplicableNorms = append(result.ApplicableNorms, norms.NormNACE)

	naceNorm, ok := pack.Norms[norms.NormNACE]
	if !ok || len(naceNorm.MaterialQualifications) == 0 {
		fail(result, Check{
			ID:         CheckNACE,
			Rule:       "Qualificação NACE do corpo",
			Status:     StatusFail,
			Message:    "Qualificações NACE indisponíveis no catálogo ativo",
			SourceNorm: norms.NormNACE,
		})
		return
	}

	qual, ok := naceNorm.MaterialQualifications[cfg.BodyMaterial]
	if !ok || !qual.Qualified {
		reason := qual.Reason
		if reason == "" {
			reason = "Verificar norma"
		}
		fail(result, Check{
			ID:         CheckNACE,
			Rule:       "Qualificação NACE do corpo",
			Status:     StatusFail,
			Message:    fmt.Sprintf("Material %s não qualificado NACE: %s", cfg.BodyMaterial, reason),
			SourceNorm: norms.NormNACE,
		})
		return
	}
	pass(result, Check{
		ID:         CheckNACE,
		Rule:       "Qualificação NACE do corpo",
		Status:     StatusPass,
		Message:    fmt.Sprintf("Material %s qualificado (máx %s)", cfg.BodyMaterial, qual.MaxHardness),
		SourceNorm: norms.NormNACE,
	})
}

func (v *Validator) checkFireTest(result *Result, cfg Configuration) {
	if !cfg.FireTestRequired {
		return
	}
	result.ApplicableNorms = append(result.ApplicableNorms, norms.NormFireTest)

	if polymerSeats[cfg.SeatMaterial] {
		fail(result, Check{
			ID:         CheckFireTest,
			Rule:       "Compatibilidade Fire Test",
			Status:     StatusFail,
			Message:    fmt.Sprintf("Sede %s não permitida para fire test", cfg.SeatMaterial),
			SourceNorm: norms.NormFireTest,
		})
		return
	}
	pass(result, Check{
		ID:         CheckFireTest,
		Rule:       "Compatibilidade Fire Test",
		Status:     StatusPass,
		Message:    fmt.Sprintf("Sede %s compatível com fire test", cfg.SeatMaterial),
		SourceNorm: norms.NormFireTest,
	})
}

// checkLowEmission passes whenever the flag is set. No material gating exists
// yet for ISO 15848; the check records the norm as applicable only.
func (v *Validator) checkLowEmission(result *Result, cfg Configuration) {
	if !cfg.LowEmissionRequired {
		return
	}
	result.ApplicableNorms = append(result.ApplicableNorms, normLowEmission)
	pass(result, Check{
		ID:         CheckLowEmission,
		Rule:       "Requisitos ISO 15848",
		Status:     StatusPass,
		Message:    "Configuração compatível com baixa emissão fugitiva",
		SourceNorm: normLowEmission,
	})
}

// checkSIL stays PENDING until a PFDavg verification is supplied; PENDING
// blocks publication just like FAIL.
func (v *Validator) checkSIL(result *Result, req Request) {
	cfg := req.Configuration
	if cfg.SILLevel == "" || cfg.SILLevel == "NA" {
		return
	}
	result.ApplicableNorms = append(result.ApplicableNorms, normSIL)

	rule := fmt.Sprintf("Requisitos %s", cfg.SILLevel)
	if req.SILResult == nil {
		result.Checks = append(result.Checks, Check{
			ID:         CheckSIL,
			Rule:       rule,
			Status:     StatusPending,
			Message:    "Requer cálculo de PFDavg",
			SourceNorm: normSIL,
		})
		return
	}

	sil := req.SILResult
	if !sil.MeetsRequired {
		fail(result, Check{
			ID:         CheckSIL,
			Rule:       rule,
			Status:     StatusFail,
			Message:    fmt.Sprintf("PFDavg %.2e atinge %s, requerido %s", sil.PFDAvg, sil.AchievedLevel, cfg.SILLevel),
			SourceNorm: normSIL,
		})
		return
	}
	pass(result, Check{
		ID:         CheckSIL,
		Rule:       rule,
		Status:     StatusPass,
		Message:    fmt.Sprintf("PFDavg %.2e atinge %s", sil.PFDAvg, sil.AchievedLevel),
		SourceNorm: normSIL,
	})
}

func (v *Validator) checkActuation(result *Result, cfg Configuration) {
	if cfg.ActuationType == "" {
		fail(result, Check{
			ID:      CheckActuation,
			Rule:    "Tipo de acionamento",
			Status:  StatusFail,
			Message: "Tipo de acionamento não selecionado",
		})
		return
	}
	pass(result, Check{
		ID:      CheckActuation,
		Rule:    "Tipo de acionamento",
		Status:  StatusPass,
		Message: "Acionamento " + cfg.ActuationType,
	})
}

func pass(result *Result, c Check) {
	result.Checks = append(result.Checks, c)
}

func fail(result *Result, c Check) {
	result.Checks = append(result.Checks, c)
	result.BlockedBy = append(result.BlockedBy, c.ID)
}
