package model

// AiPredictCountRequest is sent to AI Model 1 (occupancy prediction)
type AiPredictCountRequest struct {
	SpaceID   int64  `json:"spaceId"`
	ImagePath string `json:"imagePath"`
	Bluetooth int    `json:"bluetooth"`
	AudioFile any    `json:"audioFile"` // not collected yet, always null
}

// AiPredictCountResponse is returned by AI Model 1
type AiPredictCountResponse struct {
	SpaceID      int64 `json:"spaceId"`
	PredictCount int   `json:"predictCount"`
}

// AiRecommendationRequest is sent to AI Model 2 (purpose ranking)
type AiRecommendationRequest struct {
	UserID         int64           `json:"userId"`
	UserText       string          `json:"userText"`
	CandidateRooms []CandidateRoom `json:"candidateRooms"`
}

// CandidateRoom is a candidate space with the features the ranking model scores
type CandidateRoom struct {
	SpaceID         int64   `json:"spaceId"`
	SpaceName       string  `json:"spaceName"`
	PurposeScore    float64 `json:"purposeScore"`
	DistanceFeature float64 `json:"distanceFeature"`
	PredictCount    int     `json:"predictCount"`
	Capacity        int     `json:"capacity"`
	QuietScore      float64 `json:"quiet_score"`
	TalkScore       float64 `json:"talk_score"`
	StudyScore      float64 `json:"study_score"`
	RestScore       float64 `json:"rest_score"`

	Placeholders FeaturePlaceholders `json:"-"`
}

// FeaturePlaceholders marks features that carry a configured stand-in value
// instead of a computed one.
type FeaturePlaceholders struct {
	PurposeScore bool
	PredictCount bool
}

// Any reports whether at least one feature is a stand-in.
func (p FeaturePlaceholders) Any() bool {
	return p.PurposeScore || p.PredictCount
}

// AiRecommendationResponse is the envelope returned by AI Model 2
type AiRecommendationResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    []RankingResult `json:"data"`
}

// RankingResult is the final score of one candidate
type RankingResult struct {
	SpaceID             int64   `json:"spaceId"`
	FinalRecommendScore float64 `json:"finalRecommendScore"`
}
