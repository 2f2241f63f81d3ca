package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
)

func TestBreakerStateValue(t *testing.T) {
	assert.Equal(t, 0.0, BreakerStateValue(gobreaker.StateClosed))
	assert.Equal(t, 1.0, BreakerStateValue(gobreaker.StateHalfOpen))
	assert.Equal(t, 2.0, BreakerStateValue(gobreaker.StateOpen))
}

func TestRecommendationDroppedResults_Increments(t *testing.T) {
	before := testutil.ToFloat64(RecommendationDroppedResults)
	RecommendationDroppedResults.Add(2)
	assert.Equal(t, before+2, testutil.ToFloat64(RecommendationDroppedResults))
}

func TestCollectors_Record(t *testing.T) {
	CircuitBreakerState.WithLabelValues("test").Set(BreakerStateValue(gobreaker.StateOpen))
	assert.Equal(t, 2.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test")))

	transitions := CircuitBreakerTransitions.WithLabelValues("test", "closed", "open")
	before := testutil.ToFloat64(transitions)
	transitions.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(transitions))

	requests := RecommendationRequests.WithLabelValues("success")
	before = testutil.ToFloat64(requests)
	requests.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(requests))

	RecommendationCandidates.Observe(3)
	assert.Equal(t, 1, testutil.CollectAndCount(RecommendationCandidates, "recommendation_candidates"))
}
