// Package prometheus exports Prometheus metrics for the interview core.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "interviewkit"

var (
	// turnsTotal counts completed turns by trigger, sequenced action, and outcome.
	turnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Total number of interview turns processed",
		},
		[]string{"trigger", "action", "status"}, // status: success, error
	)

	// turnDuration is a histogram of full turn duration in seconds, from
	// trigger arrival to the channel returning to the normalizer role.
	turnDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_duration_seconds",
			Help:      "Histogram of interview turn duration in seconds",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"action"},
	)

	// generationDuration is a histogram of utterance-generation latency.
	generationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Duration of utterance-generation requests in seconds",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "status"}, // status: success, error
	)

	// sessionsActive is a gauge of interview sessions currently open.
	sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of interview sessions currently active",
		},
	)
)

func init() {
	prometheus.MustRegister(turnsTotal, turnDuration, generationDuration, sessionsActive)
}

// ObserveTurn records one completed turn.
func ObserveTurn(trigger, action, status string, duration time.Duration) {
	turnsTotal.WithLabelValues(trigger, action, status).Inc()
	turnDuration.WithLabelValues(action).Observe(duration.Seconds())
}

// ObserveGeneration records one utterance-generation request.
func ObserveGeneration(provider, status string, duration time.Duration) {
	generationDuration.WithLabelValues(provider, status).Observe(duration.Seconds())
}

// SessionStarted increments the active-session gauge.
func SessionStarted() {
	sessionsActive.Inc()
}

// SessionEnded decrements the active-session gauge.
func SessionEnded() {
	sessionsActive.Dec()
}
