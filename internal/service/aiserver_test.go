package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"everywhere/internal/config"
	"everywhere/internal/logging"
	"everywhere/internal/model"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAIConfig(baseURL string) *config.AIServerConfig {
	return &config.AIServerConfig{
		BaseURL:              baseURL,
		PredictPath:          "/ai/predict/count",
		RecommendPath:        "/api/internal/ai/recommendation",
		Timeout:              5,
		BreakerEnabled:       false,
		BreakerMinReqs:       2,
		BreakerRatio:         0.5,
		BreakerTimeout:       60,
		PlaceholderImagePath: "/path/to/image",
		PlaceholderBluetooth: 10,
	}
}

type capturedRequest struct {
	method    string
	path      string
	requestID string
	body      []byte
}

func newAIServer(t *testing.T, status int, response string) (*httptest.Server, *capturedRequest, *int32) {
	t.Helper()
	captured := &capturedRequest{}
	var hits int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		body, _ := io.ReadAll(r.Body)
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.requestID = r.Header.Get("X-Request-ID")
		captured.body = body

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, captured, &hits
}

func TestPredictCount_SendsPlaceholderSensors(t *testing.T) {
	srv, captured, _ := newAIServer(t, http.StatusOK, `{"spaceId":101,"predictCount":7}`)
	client := NewAIServerClient(testAIConfig(srv.URL))

	count, err := client.PredictCount(context.Background(), 101)
	require.NoError(t, err)
	assert.Equal(t, 7, count)

	assert.Equal(t, http.MethodPost, captured.method)
	assert.Equal(t, "/ai/predict/count", captured.path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(captured.body, &sent))
	assert.Equal(t, float64(101), sent["spaceId"])
	assert.Equal(t, "/path/to/image", sent["imagePath"])
	assert.Equal(t, float64(10), sent["bluetooth"])
	assert.Contains(t, sent, "audioFile")
	assert.Nil(t, sent["audioFile"])
}

func TestPredictCount_RejectsNegativeCount(t *testing.T) {
	srv, _, _ := newAIServer(t, http.StatusOK, `{"spaceId":1,"predictCount":-3}`)
	client := NewAIServerClient(testAIConfig(srv.URL))

	_, err := client.PredictCount(context.Background(), 1)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestPredictCount_ForwardsRequestID(t *testing.T) {
	srv, captured, _ := newAIServer(t, http.StatusOK, `{"spaceId":1,"predictCount":0}`)
	client := NewAIServerClient(testAIConfig(srv.URL))

	ctx := logging.ContextWithRequestID(context.Background(), "req-123")
	_, err := client.PredictCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "req-123", captured.requestID)
}

func TestRank_SendsBatchAndReturnsData(t *testing.T) {
	srv, captured, hits := newAIServer(t, http.StatusOK,
		`{"status":"200","message":"ok","data":[{"spaceId":102,"finalRecommendScore":0.91},{"spaceId":101,"finalRecommendScore":0.4}]}`)
	client := NewAIServerClient(testAIConfig(srv.URL))

	candidates := []model.CandidateRoom{
		{SpaceID: 101, SpaceName: "A", PurposeScore: 0.8, DistanceFeature: 0.5, PredictCount: 10, Capacity: 50, QuietScore: 0.9},
		{SpaceID: 102, SpaceName: "B", PurposeScore: 0.8, DistanceFeature: 0.1, PredictCount: 10, Capacity: 8, TalkScore: 0.95},
	}

	results, err := client.Rank(context.Background(), 9, "조용히 공부", candidates)
	require.NoError(t, err)
	assert.Equal(t, []model.RankingResult{
		{SpaceID: 102, FinalRecommendScore: 0.91},
		{SpaceID: 101, FinalRecommendScore: 0.4},
	}, results)

	assert.Equal(t, int32(1), atomic.LoadInt32(hits), "whole batch in one call")
	assert.Equal(t, "/api/internal/ai/recommendation", captured.path)

	var sent struct {
		UserID         int64            `json:"userId"`
		UserText       string           `json:"userText"`
		CandidateRooms []map[string]any `json:"candidateRooms"`
	}
	require.NoError(t, json.Unmarshal(captured.body, &sent))
	assert.Equal(t, int64(9), sent.UserID)
	assert.Equal(t, "조용히 공부", sent.UserText)
	require.Len(t, sent.CandidateRooms, 2)

	first := sent.CandidateRooms[0]
	assert.Equal(t, float64(101), first["spaceId"])
	assert.Equal(t, 0.9, first["quiet_score"])
	assert.Equal(t, 0.5, first["distanceFeature"])
	assert.Equal(t, float64(10), first["predictCount"])
	assert.NotContains(t, first, "Placeholders")
}

func TestRank_EmptyBatchIsArray(t *testing.T) {
	srv, captured, _ := newAIServer(t, http.StatusOK, `{"status":"200","message":"ok","data":[]}`)
	client := NewAIServerClient(testAIConfig(srv.URL))

	results, err := client.Rank(context.Background(), 1, "", nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Contains(t, string(captured.body), `"candidateRooms":[]`)
}

func TestRank_FailureStatusInEnvelope(t *testing.T) {
	srv, _, _ := newAIServer(t, http.StatusOK, `{"status":"500","message":"model not loaded","data":null}`)
	client := NewAIServerClient(testAIConfig(srv.URL))

	_, err := client.Rank(context.Background(), 1, "x", nil)
	require.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestRank_Non2xxIsUpstreamError(t *testing.T) {
	srv, _, _ := newAIServer(t, http.StatusBadGateway, `upstream exploded`)
	client := NewAIServerClient(testAIConfig(srv.URL))

	_, err := client.Rank(context.Background(), 1, "x", nil)
	require.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "502")
}

func TestRank_MalformedBodyIsUpstreamError(t *testing.T) {
	srv, _, _ := newAIServer(t, http.StatusOK, `{"status":`)
	client := NewAIServerClient(testAIConfig(srv.URL))

	_, err := client.Rank(context.Background(), 1, "x", nil)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestRank_UnreachableServer(t *testing.T) {
	srv, _, _ := newAIServer(t, http.StatusOK, `{}`)
	url := srv.URL
	srv.Close()

	client := NewAIServerClient(testAIConfig(url))
	_, err := client.Rank(context.Background(), 1, "x", nil)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestRank_CanceledContext(t *testing.T) {
	srv, _, _ := newAIServer(t, http.StatusOK, `{"status":"200","data":[]}`)
	client := NewAIServerClient(testAIConfig(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Rank(ctx, 1, "x", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrUpstream)
}

func TestBreaker_OpensAfterFailures(t *testing.T) {
	srv, _, hits := newAIServer(t, http.StatusInternalServerError, `down`)
	cfg := testAIConfig(srv.URL)
	cfg.BreakerEnabled = true
	client := NewAIServerClient(cfg)

	for i := 0; i < 2; i++ {
		_, err := client.PredictCount(context.Background(), 1)
		require.ErrorIs(t, err, ErrUpstream)
	}

	_, err := client.PredictCount(context.Background(), 1)
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits), "open breaker short-circuits")
}

func TestBreaker_IgnoresCancellation(t *testing.T) {
	srv, _, _ := newAIServer(t, http.StatusOK, `{"spaceId":1,"predictCount":1}`)
	cfg := testAIConfig(srv.URL)
	cfg.BreakerEnabled = true
	client := NewAIServerClient(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 5; i++ {
		_, err := client.PredictCount(ctx, 1)
		require.ErrorIs(t, err, context.Canceled)
	}

	count, err := client.PredictCount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIsSuccessStatus(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"", true},
		{"200", true},
		{"201", true},
		{"OK", true},
		{"success", true},
		{" 200 ", true},
		{"400", false},
		{"500", false},
		{"error", false},
		{"fail", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, isSuccessStatus(tt.status))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
}
