package service

import (
	"context"
	"errors"

	"everywhere/internal/model"
)

var (
	// ErrUpstream marks a failed or unsuccessful call to an external prediction service
	ErrUpstream = errors.New("upstream service error")

	// ErrCircuitOpen is returned while the AI server breaker rejects calls
	ErrCircuitOpen = errors.New("AI server circuit breaker is open")
)

// CandidateProvider supplies the candidate spaces of one request.
// The returned order is the tie-break order of the final ranking.
type CandidateProvider interface {
	ListCandidates(ctx context.Context) ([]model.Space, error)
}

// OccupancyClient predicts the current headcount of a space (AI Model 1)
type OccupancyClient interface {
	PredictCount(ctx context.Context, spaceID int64) (int, error)
}

// RankingClient scores a batch of candidates against a purpose (AI Model 2)
type RankingClient interface {
	Rank(ctx context.Context, userID int64, purpose string, candidates []model.CandidateRoom) ([]model.RankingResult, error)
}

// Ensure AIServerClient implements both AI contracts
var (
	_ OccupancyClient = (*AIServerClient)(nil)
	_ RankingClient   = (*AIServerClient)(nil)
)
