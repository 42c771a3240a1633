package utils

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatherMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "test_records",
		Help: "Records.",
	}, []string{"status"})
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "test_open",
		Help: "Open.",
	})
	other := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "other_total",
		Help: "Ignored.",
	})
	registry.MustRegister(counter, gauge, other)

	counter.WithLabelValues("ok").Add(3)
	counter.WithLabelValues("truncated").Inc()
	gauge.Set(2)
	other.Inc()

	value, err := GetCounterValue(counter.WithLabelValues("ok"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), value)

	metrics, err := GatherMetrics(registry, "test_")
	require.NoError(t, err)

	// Families are sorted by name.
	assert.Equal(t, []string{
		"test_open",
		`test_records{status="ok"}`,
		`test_records{status="truncated"}`,
	}, metrics.Keys())

	v, _ := metrics.Get(`test_records{status="truncated"}`)
	assert.Equal(t, int64(1), v)

	v, _ = metrics.Get("test_open")
	assert.Equal(t, int64(2), v)
}
