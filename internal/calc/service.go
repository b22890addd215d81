// Package calc implements the auxiliary sizing calculators: operating torque
// bands and SIL verification via the simplified 1oo1 PFDavg formula.
package calc

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"imexspec/internal/norms"
	dErrors "imexspec/pkg/domain-errors"
)

// defaultSeatCoefficient is used when the active pack carries no coefficient
// for the requested seat material.
const defaultSeatCoefficient = 0.15

// Service computes torque and SIL results. Torque parameters come from the
// active norm pack; SIL is pure arithmetic.
type Service struct {
	store  norms.Store
	logger *slog.Logger
}

// NewService creates a calculator backed by the given norm store.
func NewService(store norms.Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Torque computes the recommended torque band for a valve size, pressure
// class and seat material using the active pack's coefficients.
func (s *Service) Torque(ctx context.Context, in TorqueInput) (TorqueResult, error) {
	if in.ValveSize <= 0 {
		return TorqueResult{}, dErrors.New(dErrors.CodeBadRequest, "valve size must be positive")
	}
	if in.PressureClass <= 0 {
		return TorqueResult{}, dErrors.New(dErrors.CodeBadRequest, "pressure class must be positive")
	}

	pack, err := s.store.ActivePack(ctx)
	if err != nil {
		return TorqueResult{}, dErrors.Wrap(dErrors.CodeUnavailable, "active norm pack unavailable", err)
	}

	coeff, ok := pack.TorqueCoefficients[in.SeatMaterial]
	if !ok {
		coeff = defaultSeatCoefficient
		s.logger.WarnContext(ctx, "no torque coefficient for seat material, using default",
			"seat_material", in.SeatMaterial,
			"coefficient", coeff,
		)
	}

	c := pack.TorqueConstants
	base := coeff * math.Pow(in.ValveSize, c.SizeExponent) * (1 + c.PressureFactor*in.PressureClass)

	return TorqueResult{
		MinTorque:   int(math.Round(base * 0.9)),
		MaxTorque:   int(math.Round(base * c.SafetyMargin)),
		Recommended: int(math.Round(base)),
		Coefficient: coeff,
		Unit:        "Nm",
		Formula:     fmt.Sprintf("T = μ × D^%g × (1 + %g × P)", c.SizeExponent, c.PressureFactor),
	}, nil
}

// SIL verifies a safety loop: PFDavg = (λdu × TI)/2 + β × λdu × TI + λdu × MTTR.
func (s *Service) SIL(in SILInput) (SILResult, error) {
	if in.LambdaDU < 0 || in.TestInterval < 0 || in.Beta < 0 || in.MTTR < 0 {
		return SILResult{}, dErrors.New(dErrors.CodeBadRequest, "reliability parameters must be non-negative")
	}

	pfd := (in.LambdaDU*in.TestInterval)/2 + in.Beta*in.LambdaDU*in.TestInterval + in.LambdaDU*in.MTTR

	achieved := achievedLevel(pfd)
	// Zero PFD would make the risk reduction factor infinite, which JSON
	// cannot carry; report 0 and let clients treat it as unbounded.
	rrf := 0.0
	if pfd > 0 {
		rrf = 1 / pfd
	}

	return SILResult{
		PFDAvg:        pfd,
		RiskReduction: rrf,
		AchievedLevel: achieved,
		RequiredLevel: in.RequiredLevel,
		MeetsRequired: achieved.tier() >= in.RequiredLevel.tier(),
		Formula:       "PFDavg = (λdu × TI) / 2 + β × λdu × TI + λdu × MTTR",
	}, nil
}

// achievedLevel maps a PFDavg onto the IEC 61508 demand-mode bands. Values
// below the SIL3 band still count as SIL3.
func achievedLevel(pfd float64) SILLevel {
	switch {
	case pfd >= 0.1:
		return SILNone
	case pfd >= 0.01:
		return SIL1
	case pfd >= 0.001:
		return SIL2
	default:
		return SIL3
	}
}
