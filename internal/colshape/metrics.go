package colshape

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	indexLabel     = "index"
	directionLabel = "direction"
)

var (
	colshapeShapes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "colshape_shapes",
		Help: "The number of registered shapes.",
	}, []string{indexLabel})

	colshapeTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "colshape_transitions_total",
		Help: "The number of enter and leave transitions reported.",
	}, []string{directionLabel})

	colshapeSkippedTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "colshape_skipped_ticks_total",
		Help: "The number of ticks skipped because the tracked position was unavailable.",
	})

	colshapeTickLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "colshape_tick_seconds",
		Help:    "The time spent computing one containment tick.",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
	})
)

func indexName(unbounded bool) string {
	if unbounded {
		return "unbounded"
	}
	return "grid"
}

func instrumentShapeAdded(unbounded bool) {
	colshapeShapes.
		With(prometheus.Labels{indexLabel: indexName(unbounded)}).
		Inc()
}

func instrumentShapeRemoved(unbounded bool) {
	colshapeShapes.
		With(prometheus.Labels{indexLabel: indexName(unbounded)}).
		Dec()
}

func instrumentTick(start time.Time, t Transitions) {
	colshapeTickLatency.Observe(time.Since(start).Seconds())
	if n := len(t.Entered); n > 0 {
		colshapeTransitions.
			With(prometheus.Labels{directionLabel: "enter"}).
			Add(float64(n))
	}
	if n := len(t.Left); n > 0 {
		colshapeTransitions.
			With(prometheus.Labels{directionLabel: "leave"}).
			Add(float64(n))
	}
}

func instrumentSkippedTick() {
	colshapeSkippedTicks.Inc()
}
