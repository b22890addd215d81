package publication

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the publication gate. All methods are
// nil-safe so tests can pass a nil receiver.
type Metrics struct {
	Validations *prometheus.CounterVec
	CheckFails  *prometheus.CounterVec
}

// NewMetrics creates and registers the publication metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Validations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "imexspec_publication_validations_total",
			Help: "Publication validations by verdict",
		}, []string{"verdict"}), // verdict: "publishable", "blocked", "error"

		CheckFails: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "imexspec_publication_check_fails_total",
			Help: "Blocking check outcomes by check ID",
		}, []string{"check"}),
	}
}

// IncrementValidation records a validation verdict.
func (m *Metrics) IncrementValidation(verdict string) {
	if m != nil {
		m.Validations.WithLabelValues(verdict).Inc()
	}
}

// IncrementCheckFail records one blocking check.
func (m *Metrics) IncrementCheckFail(checkID string) {
	if m != nil {
		m.CheckFails.WithLabelValues(checkID).Inc()
	}
}
