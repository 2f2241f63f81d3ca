package utils

import "math"

const (
	// EarthRadiusKm is the mean Earth radius used by DistanceKm.
	EarthRadiusKm = 6371.0

	// DistanceFeatureCutoffKm is where DistanceFeature reaches zero. The ranking
	// model was trained against this value; do not change it.
	DistanceFeatureCutoffKm = 5.0
)

// DistanceKm returns the great-circle distance in kilometers between two
// points given in degrees, using the haversine formula.
// Inputs are not validated: NaN or out-of-range coordinates yield NaN or
// meaningless results.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// DistanceFeature maps a distance onto a [0,1] proximity score with linear
// decay: 1 at 0 km, 0 at DistanceFeatureCutoffKm and beyond.
func DistanceFeature(distanceKm float64) float64 {
	return math.Max(0.0, 1.0-distanceKm/DistanceFeatureCutoffKm)
}
