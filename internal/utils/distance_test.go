package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type point struct{ lat, lon float64 }

var samplePoints = []point{
	{0, 0},
	{0, 0.045},
	{37.5665, 126.9780},
	{37.5670, 126.9790},
	{-33.8688, 151.2093},
	{51.5074, -0.1278},
	{89.9, 179.9},
	{-89.9, -179.9},
}

func TestDistanceKm_Symmetric(t *testing.T) {
	for _, a := range samplePoints {
		for _, b := range samplePoints {
			ab := DistanceKm(a.lat, a.lon, b.lat, b.lon)
			ba := DistanceKm(b.lat, b.lon, a.lat, a.lon)
			assert.InDelta(t, ab, ba, 1e-9, "distance(%v,%v) should equal distance(%v,%v)", a, b, b, a)
		}
	}
}

func TestDistanceKm_ZeroForSamePoint(t *testing.T) {
	for _, p := range samplePoints {
		assert.Equal(t, 0.0, DistanceKm(p.lat, p.lon, p.lat, p.lon))
	}
}

func TestDistanceKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name string
		a, b point
		want float64
		tol  float64
	}{
		{
			name: "0.045 degrees of longitude on the equator",
			a:    point{0, 0},
			b:    point{0, 0.045},
			want: EarthRadiusKm * 0.045 * math.Pi / 180,
			tol:  1e-9,
		},
		{
			name: "one degree of latitude",
			a:    point{10, 20},
			b:    point{11, 20},
			want: 111.19,
			tol:  0.01,
		},
		{
			name: "London to Paris",
			a:    point{51.5074, -0.1278},
			b:    point{48.8566, 2.3522},
			want: 343.5,
			tol:  1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DistanceKm(tt.a.lat, tt.a.lon, tt.b.lat, tt.b.lon), tt.tol)
		})
	}
}

func TestDistanceKm_NaNPropagates(t *testing.T) {
	assert.True(t, math.IsNaN(DistanceKm(math.NaN(), 0, 0, 0)))
}

func TestDistanceFeature_Bounds(t *testing.T) {
	assert.Equal(t, 1.0, DistanceFeature(0))
	assert.Equal(t, 0.0, DistanceFeature(5.0))
	assert.Equal(t, 0.0, DistanceFeature(5.0001))
	assert.Equal(t, 0.0, DistanceFeature(42))
	assert.InDelta(t, 0.5, DistanceFeature(2.5), 1e-12)
	assert.InDelta(t, 0.8, DistanceFeature(1.0), 1e-12)
}

func TestDistanceFeature_NonIncreasing(t *testing.T) {
	prev := DistanceFeature(0)
	for d := 0.0; d <= 10.0; d += 0.05 {
		cur := DistanceFeature(d)
		assert.LessOrEqual(t, cur, prev, "feature must not increase at %.2f km", d)
		assert.GreaterOrEqual(t, cur, 0.0)
		assert.LessOrEqual(t, cur, 1.0)
		prev = cur
	}
}

func TestDistanceFeature_FiveKilometerScenario(t *testing.T) {
	// A sits on the requester, B is ~5 km east along the equator.
	a := DistanceFeature(DistanceKm(0, 0, 0, 0))
	b := DistanceFeature(DistanceKm(0, 0, 0, 0.045))

	assert.Equal(t, 1.0, a)
	assert.InDelta(t, 0.0, b, 1e-3)
}
