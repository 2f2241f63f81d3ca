package model

// CongestionRequest is the query of GET /api/v1/congestion
type CongestionRequest struct {
	SpaceID   *int64   `form:"spaceId" binding:"required"`
	Latitude  *float64 `form:"latitude" binding:"required"`
	Longitude *float64 `form:"longitude" binding:"required"`
}

// CongestionResponse carries the predicted headcount of one space.
// Coordinates are echoed from the request.
type CongestionResponse struct {
	SpaceID      int64   `json:"spaceId"`
	SpaceName    string  `json:"spaceName"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	PredictCount int     `json:"predictCount"`
}

// RecommendationRequest is the body of POST /api/v1/recommendation.
// CurrentFloor and TimeTableID are accepted but not used for ranking.
type RecommendationRequest struct {
	UserID           int64   `json:"userId"`
	CurrentLatitude  float64 `json:"currentLatitude"`
	CurrentLongitude float64 `json:"currentLongitude"`
	CurrentFloor     *int    `json:"currentFloor,omitempty"`
	Purpose          string  `json:"purpose"`
	TimeTableID      *int64  `json:"timeTableId,omitempty"`
}

// RecommendSpaceResponse is one item of the recommendation list
type RecommendSpaceResponse struct {
	SpaceID             int64   `json:"spaceId"`
	SpaceName           string  `json:"spaceName"`
	DistanceKm          float64 `json:"distanceKm"`
	RecommendationScore float64 `json:"recommendationScore"`
}
