// Package health evaluates the norm system and gates write operations behind
// a circuit breaker. The evaluation fails closed: any error reading the rule
// catalog reports BLOCKED, and a BLOCKED system refuses new specification
// drafts until the catalog recovers.
package health

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"imexspec/internal/norms"
	"imexspec/pkg/platform/audit"
	"imexspec/pkg/platform/circuit"
)

// PackStore is the slice of the norm store the health gate reads.
type PackStore interface {
	ActivePack(ctx context.Context) (norms.Pack, error)
	ActivePackCount(ctx context.Context) (int, error)
}

// Service runs health evaluations and tracks the breaker position.
type Service struct {
	store    PackStore
	breaker  *circuit.Breaker
	recorder *audit.Recorder
	logger   *slog.Logger

	mu   sync.RWMutex
	last Report
}

// NewService creates a health Service. recorder may be nil; failureThreshold
// controls how many consecutive BLOCKED evaluations open the breaker.
func NewService(store PackStore, recorder *audit.Recorder, logger *slog.Logger, failureThreshold int) *Service {
	return &Service{
		store:    store,
		breaker:  circuit.New("norm-system", circuit.WithFailureThreshold(failureThreshold)),
		recorder: recorder,
		logger:   logger,
	}
}

// Check evaluates the active catalog and updates the breaker.
func (s *Service) Check(ctx context.Context) Report {
	report := s.evaluate(ctx)
	report.CheckedAt = time.Now().UTC()

	var change circuit.Change
	if report.Status == StatusBlocked {
		_, change = s.breaker.RecordFailure()
	} else {
		_, change = s.breaker.RecordSuccess()
	}
	report.BreakerState = string(s.breaker.State())

	if change.Opened {
		s.logger.ErrorContext(ctx, "norm system breaker opened",
			"message", report.Message,
			"details", report.Details,
		)
		s.recordTransition(ctx, report, "opened")
	}
	if change.Closed {
		s.logger.InfoContext(ctx, "norm system breaker closed",
			"message", report.Message,
		)
		s.recordTransition(ctx, report, "closed")
	}

	s.mu.Lock()
	s.last = report
	s.mu.Unlock()

	return report
}

// Latest returns the most recent report, or a fresh evaluation if none exists.
func (s *Service) Latest(ctx context.Context) Report {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()
	if last.CheckedAt.IsZero() {
		return s.Check(ctx)
	}
	return last
}

// WritesAllowed reports whether draft creation may proceed.
func (s *Service) WritesAllowed() bool {
	return !s.breaker.IsOpen()
}

// Run re-evaluates on a fixed interval until ctx is cancelled.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}

func (s *Service) evaluate(ctx context.Context) Report {
	count, err := s.store.ActivePackCount(ctx)
	if err != nil {
		return Report{
			Status:  StatusBlocked,
			Message: "Erro crítico no sistema normativo",
			Details: err.Error(),
		}
	}
	switch {
	case count == 0:
		return Report{
			Status:  StatusBlocked,
			Message: "Nenhuma versão normativa ativa",
		}
	case count > 1:
		return Report{
			Status:  StatusBlocked,
			Message: "Múltiplas versões normativas ativas",
			Details: fmt.Sprintf("%d versões marcadas como ACTIVE", count),
		}
	}

	pack, err := s.store.ActivePack(ctx)
	if err != nil {
		return Report{
			Status:  StatusBlocked,
			Message: "Erro crítico no sistema normativo",
			Details: err.Error(),
		}
	}

	if len(pack.Norms) < pack.SystemRequirements.MinNormsForOperation {
		return Report{
			Status:      StatusBlocked,
			Message:     "Base normativa insuficiente",
			Details:     fmt.Sprintf("Requer %d normas, encontradas %d", pack.SystemRequirements.MinNormsForOperation, len(pack.Norms)),
			PackVersion: pack.Version,
		}
	}

	totalDomains, completeDomains := 0, 0
	var issues []string
	for code, norm := range pack.Norms {
		if len(norm.ValveTypes) == 0 {
			issues = append(issues, fmt.Sprintf("norma %s sem tipos de válvula declarados", code))
		}
		for key, values := range norm.Domains {
			totalDomains++
			if len(values) > 0 {
				completeDomains++
			} else {
				issues = append(issues, fmt.Sprintf("domínio %s vazio na norma %s", key, code))
			}
		}
	}

	completeness := 0.0
	if totalDomains > 0 {
		completeness = 100 * float64(completeDomains) / float64(totalDomains)
	}
	if completeness < pack.SystemRequirements.RequiredDomainCompleteness {
		return Report{
			Status:      StatusBlocked,
			Message:     "Domínios normativos incompletos",
			Details:     fmt.Sprintf("Completude: %.1f%%", completeness),
			Issues:      issues,
			PackVersion: pack.Version,
		}
	}

	if len(issues) > 0 {
		return Report{
			Status:      StatusDegraded,
			Message:     "Sistema operacional com ressalvas",
			Issues:      issues,
			PackVersion: pack.Version,
		}
	}

	return Report{
		Status:      StatusHealthy,
		Message:     "Sistema operacional",
		PackVersion: pack.Version,
	}
}

func (s *Service) recordTransition(ctx context.Context, report Report, transition string) {
	if s.recorder == nil {
		return
	}
	err := s.recorder.Record(ctx, audit.Event{
		Kind:    audit.KindHealthTransition,
		Subject: "norm-system",
		Outcome: transition,
		Detail: map[string]any{
			"status":  string(report.Status),
			"message": report.Message,
			"details": report.Details,
		},
	})
	if err != nil {
		s.logger.WarnContext(ctx, "health transition log failed", "error", err.Error())
	}
}
