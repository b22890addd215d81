package norms

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the norm resolver. All methods are
// nil-safe so tests can pass a nil receiver.
type Metrics struct {
	Resolutions    *prometheus.CounterVec
	ResolveLatency prometheus.Histogram
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
}

// NewMetrics creates and registers the norm resolver metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Resolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "imexspec_norm_resolutions_total",
			Help: "Total norm resolutions by outcome",
		}, []string{"outcome"}), // outcome: "valid", "invalid", "error"

		ResolveLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "imexspec_norm_resolve_duration_seconds",
			Help:    "Duration of full norm resolution including material fan-out",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "imexspec_norm_pack_cache_hits_total",
			Help: "Norm pack reads served from the cache",
		}),

		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "imexspec_norm_pack_cache_misses_total",
			Help: "Norm pack reads that fell through to the store",
		}),
	}
}

// IncrementResolution records a resolution outcome.
func (m *Metrics) IncrementResolution(outcome string) {
	if m != nil {
		m.Resolutions.WithLabelValues(outcome).Inc()
	}
}

// ObserveResolveLatency records the total resolution duration.
func (m *Metrics) ObserveResolveLatency(d time.Duration) {
	if m != nil {
		m.ResolveLatency.Observe(d.Seconds())
	}
}

// CacheHit records a pack cache hit.
func (m *Metrics) CacheHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

// CacheMiss records a pack cache miss.
func (m *Metrics) CacheMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}
