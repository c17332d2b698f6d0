// Package metrics provides Prometheus metrics for the voter registry and its
// derived views.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups registry, view and selection instruments.
type Metrics struct {
	RecordsTotal            prometheus.Gauge
	HydrationsTotal         prometheus.Counter
	HydrateRecordsTotal     *prometheus.CounterVec // outcome: accepted, duplicate, unkeyed
	HydrateDurationSeconds  prometheus.Histogram
	UpdatesTotal            *prometheus.CounterVec // outcome: applied, not_found
	ViewRecomputationsTotal *prometheus.CounterVec // view name
	SelectionSize           prometheus.Gauge
}

// New registers the metrics with the default Prometheus registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the metrics with reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RecordsTotal: f.NewGauge(prometheus.GaugeOpts{
			Name: "voterroll_registry_records",
			Help: "Number of voter records in the current registry snapshot",
		}),
		HydrationsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "voterroll_registry_hydrations_total",
			Help: "Total number of bulk hydrations",
		}),
		HydrateRecordsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voterroll_registry_hydrate_records_total",
			Help: "Raw records seen during hydration by outcome",
		}, []string{"outcome"}),
		HydrateDurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "voterroll_registry_hydrate_duration_seconds",
			Help:    "Duration of bulk hydration",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		UpdatesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voterroll_registry_updates_total",
			Help: "Record updates by outcome",
		}, []string{"outcome"}),
		ViewRecomputationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voterroll_view_recomputations_total",
			Help: "Derived view recomputations by view",
		}, []string{"view"}),
		SelectionSize: f.NewGauge(prometheus.GaugeOpts{
			Name: "voterroll_selection_size",
			Help: "Number of currently selected voters",
		}),
	}
}

// ObserveHydrate records the outcome of one hydration.
func (m *Metrics) ObserveHydrate(accepted, duplicates, unkeyed int, durationSeconds float64) {
	m.HydrationsTotal.Inc()
	m.HydrateRecordsTotal.WithLabelValues("accepted").Add(float64(accepted))
	m.HydrateRecordsTotal.WithLabelValues("duplicate").Add(float64(duplicates))
	m.HydrateRecordsTotal.WithLabelValues("unkeyed").Add(float64(unkeyed))
	m.HydrateDurationSeconds.Observe(durationSeconds)
}

// SetRecords updates the registry size gauge.
func (m *Metrics) SetRecords(n int) {
	m.RecordsTotal.Set(float64(n))
}

// RecordUpdate counts an update attempt.
func (m *Metrics) RecordUpdate(found bool) {
	outcome := "applied"
	if !found {
		outcome = "not_found"
	}
	m.UpdatesTotal.WithLabelValues(outcome).Inc()
}

// RecordRecompute counts a derived view recomputation.
func (m *Metrics) RecordRecompute(view string) {
	m.ViewRecomputationsTotal.WithLabelValues(view).Inc()
}

// SetSelectionSize updates the selection gauge.
func (m *Metrics) SetSelectionSize(n int) {
	m.SelectionSize.Set(float64(n))
}
