package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.ObserveHydrate(5, 1, 2, 0.01)
	m.SetRecords(5)
	m.RecordUpdate(true)
	m.RecordUpdate(false)
	m.RecordUpdate(false)
	m.RecordRecompute("by_booth")
	m.SetSelectionSize(3)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.HydrationsTotal))
	assert.Equal(t, float64(5), testutil.ToFloat64(m.HydrateRecordsTotal.WithLabelValues("accepted")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HydrateRecordsTotal.WithLabelValues("duplicate")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.HydrateRecordsTotal.WithLabelValues("unkeyed")))
	assert.Equal(t, float64(5), testutil.ToFloat64(m.RecordsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.UpdatesTotal.WithLabelValues("applied")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.UpdatesTotal.WithLabelValues("not_found")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ViewRecomputationsTotal.WithLabelValues("by_booth")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.SelectionSize))
}

func TestNewWithRegisterer_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewWithRegisterer(prometheus.NewRegistry())
		NewWithRegisterer(prometheus.NewRegistry())
	})
}
