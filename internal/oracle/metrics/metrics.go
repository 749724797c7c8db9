package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes. Timeouts are split out from generic errors because the
// comparator fails open on both and operators need to tell them apart.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)

// Metrics holds the Prometheus instruments for the semantic oracle adapters.
type Metrics struct {
	Requests  *prometheus.CounterVec
	CacheHits prometheus.Counter
}

// New creates and registers the oracle metrics on the given registerer.
// Tests pass a fresh registry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "docaudit_oracle_requests_total",
			Help: "Total equivalence requests sent to the oracle, by outcome",
		}, []string{"outcome"}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "docaudit_oracle_cache_hits_total",
			Help: "Total equivalence lookups served from the verdict cache",
		}),
	}
}

func (m *Metrics) ObserveRequest(outcome string) {
	m.Requests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementCacheHit() {
	m.CacheHits.Inc()
}
