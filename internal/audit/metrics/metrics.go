package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the audit pipeline.
type Metrics struct {
	AuditsCompleted         prometheus.Counter
	AuditsInsufficientData  prometheus.Counter
	InconsistenciesDetected *prometheus.CounterVec
	RiskLevelsAssigned      *prometheus.CounterVec
}

// New creates and registers the audit metrics on the given registerer.
// Tests pass a fresh registry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AuditsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "docaudit_audits_completed_total",
			Help: "Total number of audit units processed to completion",
		}),
		AuditsInsufficientData: factory.NewCounter(prometheus.CounterOpts{
			Name: "docaudit_audits_insufficient_data_total",
			Help: "Total number of audit units rejected for lacking identifying fields",
		}),
		InconsistenciesDetected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "docaudit_inconsistencies_detected_total",
			Help: "Total inconsistencies detected, by severity",
		}, []string{"severity"}),
		RiskLevelsAssigned: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "docaudit_risk_levels_assigned_total",
			Help: "Total risk levels assigned to completed audits",
		}, []string{"level"}),
	}
}

func (m *Metrics) ObserveAudit(severities []string, level string) {
	m.AuditsCompleted.Inc()
	for _, severity := range severities {
		m.InconsistenciesDetected.WithLabelValues(severity).Inc()
	}
	m.RiskLevelsAssigned.WithLabelValues(level).Inc()
}

func (m *Metrics) IncrementInsufficientData() {
	m.AuditsInsufficientData.Inc()
}
