// Package metrics holds the Prometheus collectors for the recommendation
// pipeline and its calls to the AI server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker/v2"
)

var (
	// AIRequestDuration tracks outbound AI server latency by endpoint and outcome.
	AIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_server_request_duration_seconds",
			Help:    "Duration of calls to the AI prediction server in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "outcome"}, // outcome: success, failure, rejected
	)

	// CircuitBreakerState is the current breaker state per breaker name.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ai_server_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// CircuitBreakerTransitions counts breaker state changes.
	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_server_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// RecommendationCandidates observes the candidate batch size per request.
	RecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_candidates",
			Help:    "Number of candidate spaces sent to the ranking model per request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	// RecommendationDroppedResults counts ranking results whose space id did
	// not match any candidate of the request.
	RecommendationDroppedResults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_dropped_results_total",
			Help: "Ranking results dropped because their space id matched no candidate",
		},
	)

	// RecommendationRequests counts recommendation calls by outcome.
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Recommendation requests by outcome",
		},
		[]string{"outcome"}, // success, error
	)
)

// BreakerStateValue maps a gobreaker state onto the gauge encoding.
func BreakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
