package norms

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"imexspec/internal/materials"
	dErrors "imexspec/pkg/domain-errors"
	"imexspec/pkg/requestcontext"
)

// Resolver maps a (valveType, serviceType) combination to its governing
// standards, attribute domains and material candidates.
type Resolver struct {
	store     Store
	materials materials.Store
	logger    *slog.Logger
	metrics   *Metrics
	tracer    trace.Tracer
}

// NewResolver builds a Resolver over the given stores.
func NewResolver(store Store, materialStore materials.Store, logger *slog.Logger, m *Metrics) *Resolver {
	return &Resolver{
		store:     store,
		materials: materialStore,
		logger:    logger,
		metrics:   m,
		tracer:    otel.Tracer("imexspec.norms"),
	}
}

// Resolve filters the active pack to the standards governing the
// combination. Missing inputs short-circuit to the neutral invalid result
// without touching the store.
func (r *Resolver) Resolve(ctx context.Context, valveType, serviceType string) (ResolveResult, error) {
	if valveType == "" || serviceType == "" {
		return invalidResult("valve type and service type are required"), nil
	}

	ctx, span := r.tracer.Start(ctx, "norms.resolve",
		trace.WithAttributes(
			attribute.String("valve_type", valveType),
			attribute.String("service_type", serviceType),
		),
	)
	defer span.End()

	start := time.Now()
	defer func() { r.metrics.ObserveResolveLatency(time.Since(start)) }()

	pack, err := r.store.ActivePack(ctx)
	if err != nil {
		r.metrics.IncrementResolution("error")
		r.logger.ErrorContext(ctx, "failed to load active norm pack",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		return ResolveResult{}, dErrors.Wrap(dErrors.CodeUnavailable, "norm catalog unavailable", err)
	}

	applicable, rejected := partition(pack, valveType, serviceType)

	construction := make([]Norm, 0, len(applicable))
	applicableCodes := make([]string, 0, len(applicable))
	for _, n := range applicable {
		applicableCodes = append(applicableCodes, n.Code)
		if n.Type == TypeConstruction {
			construction = append(construction, n)
		}
	}

	if len(construction) == 0 {
		r.metrics.IncrementResolution("invalid")
		result := invalidResult(fmt.Sprintf("no construction standard for %s+%s", valveType, serviceType))
		result.ApplicableStandards = applicableCodes
		result.RejectedStandards = rejected
		return result, nil
	}

	primary := construction[0]
	refs := make([]StandardRef, 0, len(construction))
	for _, n := range construction {
		refs = append(refs, StandardRef{Code: n.Code, Title: n.Title})
	}

	materialsByRole, err := r.fetchMaterials(ctx, primary.Code)
	if err != nil {
		r.metrics.IncrementResolution("error")
		r.logger.ErrorContext(ctx, "failed to load material candidates",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		return ResolveResult{}, dErrors.Wrap(dErrors.CodeUnavailable, "material catalog unavailable", err)
	}

	r.metrics.IncrementResolution("valid")
	span.SetAttributes(attribute.String("primary_norm", primary.Code))

	return ResolveResult{
		IsValid:               true,
		ApplicableStandards:   applicableCodes,
		RejectedStandards:     rejected,
		ConstructionStandards: refs,
		PrimaryNorm:           primary.Code,
		AutoSelected:          len(construction) == 1,
		AttributeDomains:      primary.Domains,
		MaterialsByRole:       materialsByRole,
	}, nil
}

// fetchMaterials loads the candidates the primary construction standard
// qualifies, for all four roles in parallel.
func (r *Resolver) fetchMaterials(ctx context.Context, normCode string) (map[materials.Role][]materials.Material, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	byRole := make(map[materials.Role][]materials.Material, 4)

	for _, role := range []materials.Role{materials.RoleBody, materials.RoleObturator, materials.RoleSeat, materials.RoleStem} {
		g.Go(func() error {
			list, err := r.materials.ListByRole(ctx, normCode, role)
			if err != nil {
				return fmt.Errorf("list %s materials for %s: %w", role, normCode, err)
			}
			mu.Lock()
			byRole[role] = list
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return byRole, nil
}

func partition(pack Pack, valveType, serviceType string) ([]Norm, []RejectedStandard) {
	all := make([]Norm, 0, len(pack.Norms))
	for _, n := range pack.Norms {
		all = append(all, n)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Precedence != all[j].Precedence {
			return all[i].Precedence < all[j].Precedence
		}
		return all[i].Code < all[j].Code
	})

	var applicable []Norm
	var rejected []RejectedStandard
	for _, n := range all {
		if n.AppliesTo(valveType, serviceType) {
			applicable = append(applicable, n)
		} else {
			rejected = append(rejected, RejectedStandard{
				Code:   n.Code,
				Reason: fmt.Sprintf("not applicable for %s+%s", valveType, serviceType),
			})
		}
	}
	return applicable, rejected
}

func invalidResult(reason string) ResolveResult {
	return ResolveResult{
		IsValid:               false,
		Reason:                reason,
		ApplicableStandards:   []string{},
		RejectedStandards:     []RejectedStandard{},
		ConstructionStandards: []StandardRef{},
	}
}
