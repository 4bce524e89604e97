package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// StageMetrics tracks upstream call durations and failures by pipeline stage
type StageMetrics struct {
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewStageMetrics creates and registers stage metrics under the namespace
func NewStageMetrics(namespace string) (*StageMetrics, error) {
	res := &StageMetrics{}
	res.duration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_durations_seconds",
			Help:      "Upstream stage latency distributions.",
			Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 20, 40, 80, 160},
		}, []string{"stage"})
	if err := Register(res.duration); err != nil {
		return nil, errors.Wrap(err, "can't register stage duration metric")
	}
	res.failures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_failures_total",
			Help:      "Number of failed upstream stage calls.",
		}, []string{"stage"})
	if err := Register(res.failures); err != nil {
		return nil, errors.Wrap(err, "can't register stage failure metric")
	}
	return res, nil
}

// Observe records the stage call started at start
func (sm *StageMetrics) Observe(stage string, start time.Time, err error) {
	sm.duration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	if err != nil {
		sm.failures.WithLabelValues(stage).Inc()
	}
}
