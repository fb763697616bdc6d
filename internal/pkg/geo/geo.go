package geo

import "math"

const earthRadiusMeters = 6371000

// Evaluation is the result of checking a point against a job site geofence.
type Evaluation struct {
	IsWithin       bool
	DistanceMeters float64
}

// HaversineDistance returns the great-circle distance between two
// coordinates in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Evaluate checks whether a point falls inside the circular geofence around
// a job site center. The boundary is inclusive: a point at exactly
// radiusMeters is within. A radius of zero only admits a point with zero
// computed distance.
func Evaluate(centerLat, centerLng, radiusMeters, pointLat, pointLng float64) Evaluation {
	distance := HaversineDistance(centerLat, centerLng, pointLat, pointLng)
	return Evaluation{
		IsWithin:       distance <= radiusMeters,
		DistanceMeters: distance,
	}
}
