package sideeffect

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var sideEffectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "side_effects_total",
		Help: "Total number of post-transition side effects by outcome.",
	},
	[]string{"effect", "outcome"},
)

// PrometheusRecorder reports outcomes as the side_effects_total counter.
type PrometheusRecorder struct{}

func NewPrometheusRecorder() *PrometheusRecorder {
	return &PrometheusRecorder{}
}

func (*PrometheusRecorder) Record(effect string, outcome Outcome) {
	sideEffectsTotal.WithLabelValues(effect, string(outcome)).Inc()
}
