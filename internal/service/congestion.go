package service

import (
	"context"
	"fmt"

	"everywhere/internal/model"
)

// UnknownSpaceName is reported for space ids the catalog does not know
const UnknownSpaceName = "unknown"

// CongestionService answers how crowded a single space is
type CongestionService struct {
	provider  CandidateProvider
	occupancy OccupancyClient
}

// NewCongestionService creates a new congestion service
func NewCongestionService(provider CandidateProvider, occupancy OccupancyClient) *CongestionService {
	return &CongestionService{
		provider:  provider,
		occupancy: occupancy,
	}
}

// Congestion resolves the space name and asks the occupancy model for its
// predicted headcount. The requester coordinates are echoed unchanged.
func (s *CongestionService) Congestion(ctx context.Context, spaceID int64, latitude, longitude float64) (*model.CongestionResponse, error) {
	spaces, err := s.provider.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}

	name := UnknownSpaceName
	if space, ok := model.FindSpace(spaces, spaceID); ok && space.Name != "" {
		name = space.Name
	}

	count, err := s.occupancy.PredictCount(ctx, spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to predict count for space %d: %w", spaceID, err)
	}

	return &model.CongestionResponse{
		SpaceID:      spaceID,
		SpaceName:    name,
		Latitude:     latitude,
		Longitude:    longitude,
		PredictCount: count,
	}, nil
}
