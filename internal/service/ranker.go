package service

import (
	"sort"

	"everywhere/internal/model"
	"everywhere/internal/utils"
)

// Location is a requester position in degrees
type Location struct {
	Latitude  float64
	Longitude float64
}

// rankedItem keeps the provider position of a merged result for tie-breaking
type rankedItem struct {
	item     model.RecommendSpaceResponse
	position int
}

// MergeResults joins ranking results back to the candidate spaces by id and
// orders them by final score, highest first. Equal scores keep the order in
// which the provider listed the spaces.
//
// Results whose id matches no candidate, and repeated results for an id
// already merged, are left out and their ids returned in dropped.
func MergeResults(origin Location, spaces []model.Space, results []model.RankingResult) (items []model.RecommendSpaceResponse, dropped []int64) {
	positions := make(map[int64]int, len(spaces))
	for i, s := range spaces {
		if _, seen := positions[s.ID]; !seen {
			positions[s.ID] = i
		}
	}

	merged := make([]rankedItem, 0, len(results))
	used := make(map[int64]bool, len(results))
	for _, result := range results {
		pos, ok := positions[result.SpaceID]
		if !ok || used[result.SpaceID] {
			dropped = append(dropped, result.SpaceID)
			continue
		}
		used[result.SpaceID] = true

		space := spaces[pos]
		merged = append(merged, rankedItem{
			item: model.RecommendSpaceResponse{
				SpaceID:             space.ID,
				SpaceName:           space.Name,
				DistanceKm:          utils.DistanceKm(origin.Latitude, origin.Longitude, space.Latitude, space.Longitude),
				RecommendationScore: result.FinalRecommendScore,
			},
			position: pos,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].item.RecommendationScore != merged[j].item.RecommendationScore {
			return merged[i].item.RecommendationScore > merged[j].item.RecommendationScore
		}
		return merged[i].position < merged[j].position
	})

	items = make([]model.RecommendSpaceResponse, len(merged))
	for i, m := range merged {
		items[i] = m.item
	}
	return items, dropped
}
