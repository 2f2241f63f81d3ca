package model

// Space represents a candidate physical space with its static attributes.
// Category scores are nominally in [0,1] but are passed through unvalidated.
type Space struct {
	ID         int64   `json:"spaceId"`
	Name       string  `json:"spaceName"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Capacity   int     `json:"capacity"`
	QuietScore float64 `json:"quiet_score"`
	TalkScore  float64 `json:"talk_score"`
	StudyScore float64 `json:"study_score"`
	RestScore  float64 `json:"rest_score"`
}

// FindSpace returns the first space with the given id.
func FindSpace(spaces []Space, id int64) (Space, bool) {
	for _, s := range spaces {
		if s.ID == id {
			return s, true
		}
	}
	return Space{}, false
}
