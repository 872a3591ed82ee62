package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/you-humble/jewelry-pricing/internal/model"
)

const namespace = "jewelry"

const (
	resultSynced = "synced"
	resultFailed = "failed"
)

type SyncMetrics struct {
	runs     *prometheus.CounterVec
	products *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewSyncMetrics registers the price synchronization collectors on reg.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	f := promauto.With(reg)

	return &SyncMetrics{
		runs: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "price_sync",
				Name:      "runs_total",
				Help:      "Total number of variant price synchronizations by outcome",
			},
			[]string{"entity_type", "outcome"},
		),
		products: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "price_sync",
				Name:      "products_total",
				Help:      "Total number of products repriced by a synchronization",
			},
			[]string{"entity_type", "result"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "price_sync",
				Name:      "duration_seconds",
				Help:      "Duration of variant price synchronizations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"entity_type"},
		),
	}
}

func (m *SyncMetrics) SyncFinished(t model.EntityType, outcome string, synced, failed int, took time.Duration) {
	label := entityLabel(t)

	m.runs.WithLabelValues(label, outcome).Inc()
	if synced > 0 {
		m.products.WithLabelValues(label, resultSynced).Add(float64(synced))
	}
	if failed > 0 {
		m.products.WithLabelValues(label, resultFailed).Add(float64(failed))
	}
	m.duration.WithLabelValues(label).Observe(took.Seconds())
}

// Unvalidated input must not grow label cardinality.
func entityLabel(t model.EntityType) string {
	if !t.Valid() {
		return "unknown"
	}
	return t.String()
}
