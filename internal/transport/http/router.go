// Package httptransport assembles the HTTP surface: middleware stack, module
// routes and the operational endpoints. Handlers stay thin and delegate to
// domain services; all wiring happens here so main only builds dependencies.
package httptransport

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"imexspec/internal/calc"
	calchandler "imexspec/internal/calc/handler"
	"imexspec/internal/catalog"
	cataloghandler "imexspec/internal/catalog/handler"
	"imexspec/internal/health"
	healthhandler "imexspec/internal/health/handler"
	"imexspec/internal/imex"
	imexhandler "imexspec/internal/imex/handler"
	"imexspec/internal/materials"
	materialshandler "imexspec/internal/materials/handler"
	"imexspec/internal/norms"
	normshandler "imexspec/internal/norms/handler"
	"imexspec/internal/platform/middleware"
	"imexspec/internal/publication"
	publicationhandler "imexspec/internal/publication/handler"
	"imexspec/internal/rules"
	ruleshandler "imexspec/internal/rules/handler"
	"imexspec/internal/speccfg"
	speccfghandler "imexspec/internal/speccfg/handler"
)

// Deps carries every domain service the router exposes.
type Deps struct {
	Logger *slog.Logger

	CatalogStore   catalog.Store
	MaterialsStore materials.Store
	NormResolver   *norms.Resolver
	RuleEngine     *rules.Engine
	Encoder        *imex.Encoder
	Calc           *calc.Service
	Validator      *publication.Validator
	Health         *health.Service
	Specs          *speccfg.Service
}

var (
	latencyOnce sync.Once
	latency     *prometheus.HistogramVec
)

// requestLatency registers the shared latency histogram exactly once; tests
// build multiple routers against the same default registry.
func requestLatency() *prometheus.HistogramVec {
	latencyOnce.Do(func() {
		latency = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "imexspec_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"})
	})
	return latency
}

// NewRouter builds the full route tree under /api/v1 plus the operational
// endpoints /healthz and /metrics at the root.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Actor)
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.AccessLog(d.Logger))
	r.Use(middleware.Latency(requestLatency()))

	r.Route("/api/v1", func(api chi.Router) {
		cataloghandler.New(d.CatalogStore, d.Logger).Register(api)
		materialshandler.New(d.MaterialsStore, d.Logger).Register(api)
		normshandler.New(d.NormResolver, d.Logger).Register(api)
		ruleshandler.New(d.RuleEngine, d.Logger).Register(api)
		imexhandler.New(d.Encoder, d.Logger).Register(api)
		calchandler.New(d.Calc, d.Logger).Register(api)
		publicationhandler.New(d.Validator, d.Logger).Register(api)
		healthhandler.New(d.Health, d.Logger).Register(api)
		speccfghandler.New(d.Specs, d.Logger).Register(api)
	})

	// Liveness only; /api/v1/health/system carries the domain verdict.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
