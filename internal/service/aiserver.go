package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"everywhere/internal/config"
	"everywhere/internal/logging"
	"everywhere/internal/metrics"
	"everywhere/internal/model"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
)

const (
	breakerName     = "ai-server"
	maxResponseSize = 4 << 20

	endpointPredictCount   = "predict_count"
	endpointRecommendation = "recommendation"
)

// AIServerClient calls the prediction server hosting AI Model 1 and AI Model 2
type AIServerClient struct {
	config     *config.AIServerConfig
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte] // nil when disabled
}

// NewAIServerClient creates a client for the configured AI server
func NewAIServerClient(cfg *config.AIServerConfig) *AIServerClient {
	c := &AIServerClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.AITimeout(),
		},
	}

	if cfg.BreakerEnabled {
		c.breaker = newBreaker(cfg)
	}
	return c
}

func newBreaker(cfg *config.AIServerConfig) *gobreaker.CircuitBreaker[[]byte] {
	minRequests := uint32(max(cfg.BreakerMinReqs, 1))
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     time.Duration(cfg.BreakerTimeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.BreakerRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("AI server circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(metrics.BreakerStateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
		// A caller giving up says nothing about the AI server's health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
}

// PredictCount asks AI Model 1 for the predicted headcount of a space
func (c *AIServerClient) PredictCount(ctx context.Context, spaceID int64) (int, error) {
	req := model.AiPredictCountRequest{
		SpaceID:   spaceID,
		ImagePath: c.config.PlaceholderImagePath,
		Bluetooth: c.config.PlaceholderBluetooth,
		AudioFile: nil,
	}

	var resp model.AiPredictCountResponse
	if err := c.post(ctx, endpointPredictCount, c.config.PredictPath, req, &resp); err != nil {
		return 0, err
	}

	if resp.PredictCount < 0 {
		return 0, fmt.Errorf("%w: negative predictCount %d for space %d", ErrUpstream, resp.PredictCount, spaceID)
	}
	return resp.PredictCount, nil
}

// Rank sends the whole candidate batch to AI Model 2 in a single call
func (c *AIServerClient) Rank(ctx context.Context, userID int64, purpose string, candidates []model.CandidateRoom) ([]model.RankingResult, error) {
	if candidates == nil {
		candidates = []model.CandidateRoom{}
	}
	req := model.AiRecommendationRequest{
		UserID:         userID,
		UserText:       purpose,
		CandidateRooms: candidates,
	}

	var resp model.AiRecommendationResponse
	if err := c.post(ctx, endpointRecommendation, c.config.RecommendPath, req, &resp); err != nil {
		return nil, err
	}

	if !isSuccessStatus(resp.Status) {
		return nil, fmt.Errorf("%w: ranking returned status %q: %s", ErrUpstream, resp.Status, resp.Message)
	}
	return resp.Data, nil
}

// post sends payload as JSON and decodes a successful response into out
func (c *AIServerClient) post(ctx context.Context, endpoint, path string, payload, out any) error {
	start := time.Now()

	body, err := c.execute(func() ([]byte, error) {
		return c.doPost(ctx, path, payload)
	})

	outcome := "success"
	switch {
	case errors.Is(err, ErrCircuitOpen):
		outcome = "rejected"
	case err != nil:
		outcome = "failure"
	}
	metrics.AIRequestDuration.WithLabelValues(endpoint, outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("endpoint", endpoint).Dur("took", time.Since(start)).Msg("AI server call failed")
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to unmarshal %s response: %w", ErrUpstream, endpoint, err)
	}

	logging.Ctx(ctx).Debug().Str("endpoint", endpoint).Dur("took", time.Since(start)).Msg("AI server call completed")
	return nil
}

func (c *AIServerClient) execute(fn func() ([]byte, error)) ([]byte, error) {
	if c.breaker == nil {
		return fn()
	}

	body, err := c.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
	}
	return body, err
}

func (c *AIServerClient) doPost(ctx context.Context, path string, payload any) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.config.BaseURL + path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if requestID := logging.RequestIDFromContext(ctx); requestID != "" {
		httpReq.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: failed to send request to %s: %w", ErrUpstream, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned status %d: %s", ErrUpstream, url, resp.StatusCode, truncate(string(body), 200))
	}

	return body, nil
}

// isSuccessStatus accepts an empty status, "ok"/"success", or any 2xx code.
func isSuccessStatus(status string) bool {
	status = strings.TrimSpace(status)
	if status == "" || strings.EqualFold(status, "ok") || strings.EqualFold(status, "success") {
		return true
	}
	code, err := strconv.Atoi(status)
	return err == nil && code >= 200 && code <= 299
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
