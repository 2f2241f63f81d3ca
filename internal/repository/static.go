package repository

import (
	"context"

	"everywhere/internal/model"
)

// DefaultSpaces is the built-in campus catalog used when no database is configured
var DefaultSpaces = []model.Space{
	{ID: 101, Name: "중앙 도서관 1열람실", Latitude: 37.5665, Longitude: 126.9780, Capacity: 50, QuietScore: 0.8, TalkScore: 0.1, StudyScore: 0.9, RestScore: 0.2},
	{ID: 102, Name: "A동 팀플실 203호", Latitude: 37.5668, Longitude: 126.9785, Capacity: 10, QuietScore: 0.5, TalkScore: 0.7, StudyScore: 0.4, RestScore: 0.3},
	{ID: 103, Name: "교수회관 라운지", Latitude: 37.5670, Longitude: 126.9790, Capacity: 30, QuietScore: 0.3, TalkScore: 0.9, StudyScore: 0.1, RestScore: 0.8},
}

// StaticCatalog serves a fixed, read-only list of spaces
type StaticCatalog struct {
	spaces []model.Space
}

// NewStaticCatalog creates a catalog over a private copy of spaces
func NewStaticCatalog(spaces []model.Space) *StaticCatalog {
	cp := make([]model.Space, len(spaces))
	copy(cp, spaces)
	return &StaticCatalog{spaces: cp}
}

// ListCandidates returns a copy of the catalog in its declared order
func (c *StaticCatalog) ListCandidates(ctx context.Context) ([]model.Space, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]model.Space, len(c.spaces))
	copy(out, c.spaces)
	return out, nil
}
