package service

import (
	"context"
	"fmt"
	"time"

	"everywhere/internal/logging"
	"everywhere/internal/metrics"
	"everywhere/internal/model"
	"everywhere/internal/utils"
)

// FeatureDefaults are the stand-in values sent to the ranking model for
// features that are not computed per candidate yet.
type FeatureDefaults struct {
	PurposeScore float64
	PredictCount int
}

// DropObserver is told about ranking results that matched no candidate
type DropObserver func(ctx context.Context, droppedIDs []int64)

// RecommendationService builds the ranking request for a user and merges the
// model's scores back into an ordered recommendation list.
type RecommendationService struct {
	provider CandidateProvider
	ranking  RankingClient
	defaults FeatureDefaults
	onDrop   DropObserver
}

// NewRecommendationService creates a new recommendation service.
// Dropped results are always counted; a nil onDrop only logs them.
func NewRecommendationService(
	provider CandidateProvider,
	ranking RankingClient,
	defaults FeatureDefaults,
	onDrop DropObserver,
) *RecommendationService {
	if onDrop == nil {
		onDrop = logDroppedResults
	}
	return &RecommendationService{
		provider: provider,
		ranking:  ranking,
		defaults: defaults,
		onDrop:   onDrop,
	}
}

// Recommend ranks every candidate space for the user's purpose and position.
// The result is sorted by recommendation score, highest first, and is never
// truncated. Any failure to list candidates or to rank them fails the whole
// call.
func (s *RecommendationService) Recommend(ctx context.Context, req *model.RecommendationRequest) ([]model.RecommendSpaceResponse, error) {
	startTime := time.Now()

	items, dropped, err := s.recommend(ctx, req)
	if err != nil {
		metrics.RecommendationRequests.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.RecommendationRequests.WithLabelValues("success").Inc()

	if len(dropped) > 0 {
		metrics.RecommendationDroppedResults.Add(float64(len(dropped)))
		s.onDrop(ctx, dropped)
	}

	logging.Ctx(ctx).Info().
		Int64("user_id", req.UserID).
		Int("results", len(items)).
		Int("dropped", len(dropped)).
		Int64("took_ms", time.Since(startTime).Milliseconds()).
		Msg("Recommendation completed")

	return items, nil
}

func (s *RecommendationService) recommend(ctx context.Context, req *model.RecommendationRequest) ([]model.RecommendSpaceResponse, []int64, error) {
	spaces, err := s.provider.ListCandidates(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list candidate spaces: %w", err)
	}

	origin := Location{Latitude: req.CurrentLatitude, Longitude: req.CurrentLongitude}
	candidates := s.BuildCandidates(origin, spaces)
	metrics.RecommendationCandidates.Observe(float64(len(candidates)))

	results, err := s.ranking.Rank(ctx, req.UserID, req.Purpose, candidates)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to rank candidate spaces: %w", err)
	}

	items, dropped := MergeResults(origin, spaces, results)
	return items, dropped, nil
}

// BuildCandidates computes the ranking features of each space in provider order
func (s *RecommendationService) BuildCandidates(origin Location, spaces []model.Space) []model.CandidateRoom {
	candidates := make([]model.CandidateRoom, 0, len(spaces))
	for _, space := range spaces {
		distanceKm := utils.DistanceKm(origin.Latitude, origin.Longitude, space.Latitude, space.Longitude)

		candidates = append(candidates, model.CandidateRoom{
			SpaceID:         space.ID,
			SpaceName:       space.Name,
			PurposeScore:    s.defaults.PurposeScore,
			DistanceFeature: utils.DistanceFeature(distanceKm),
			PredictCount:    s.defaults.PredictCount,
			Capacity:        space.Capacity,
			QuietScore:      space.QuietScore,
			TalkScore:       space.TalkScore,
			StudyScore:      space.StudyScore,
			RestScore:       space.RestScore,
			// TODO: replace with live AI Model 1 counts and a purpose model once
			// the occupancy client can be called per candidate.
			Placeholders: model.FeaturePlaceholders{
				PurposeScore: true,
				PredictCount: true,
			},
		})
	}
	return candidates
}

func logDroppedResults(ctx context.Context, droppedIDs []int64) {
	logging.Ctx(ctx).Warn().
		Ints64("space_ids", droppedIDs).
		Msg("Dropped ranking results with no matching candidate")
}
