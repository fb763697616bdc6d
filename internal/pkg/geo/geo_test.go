package geo

import (
	"math"
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64 // meters
		tolerance              float64
	}{
		{"same point", -6.2, 106.8, -6.2, 106.8, 0, 0.001},
		{"jakarta to surabaya", -6.2088, 106.8456, -7.2575, 112.7521, 663000, 5000},
		{"one degree of latitude", 0, 0, 1, 0, 111195, 100},
		{"short hop", 37.4219999, -122.0840575, 37.4229999, -122.0840575, 111.2, 0.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := HaversineDistance(c.lat1, c.lon1, c.lat2, c.lon2)
			if math.Abs(got-c.want) > c.tolerance {
				t.Errorf("HaversineDistance() = %f, want %f ± %f", got, c.want, c.tolerance)
			}
		})
	}
}

func TestEvaluate_BoundaryInclusive(t *testing.T) {
	centerLat, centerLng := 40.7128, -74.0060
	pointLat, pointLng := 40.7138, -74.0060

	distance := HaversineDistance(centerLat, centerLng, pointLat, pointLng)

	// Radius exactly at the computed distance: within.
	eval := Evaluate(centerLat, centerLng, distance, pointLat, pointLng)
	if !eval.IsWithin {
		t.Errorf("point at exactly radius distance should be within, distance=%f", eval.DistanceMeters)
	}

	// Radius just under the distance: outside.
	eval = Evaluate(centerLat, centerLng, distance-0.01, pointLat, pointLng)
	if eval.IsWithin {
		t.Errorf("point past the radius should not be within, distance=%f", eval.DistanceMeters)
	}
}

func TestEvaluate_ZeroRadius(t *testing.T) {
	eval := Evaluate(51.5074, -0.1278, 0, 51.5075, -0.1278)
	if eval.IsWithin {
		t.Error("zero radius should reject any point with nonzero distance")
	}
	if eval.DistanceMeters <= 0 {
		t.Errorf("expected positive distance, got %f", eval.DistanceMeters)
	}

	eval = Evaluate(51.5074, -0.1278, 0, 51.5074, -0.1278)
	if !eval.IsWithin {
		t.Error("zero radius should still admit the exact center")
	}
}

func TestEvaluate_WithinRadius(t *testing.T) {
	// ~111m apart, radius 150m.
	eval := Evaluate(0, 0, 150, 0.001, 0)
	if !eval.IsWithin {
		t.Errorf("expected within, distance=%f", eval.DistanceMeters)
	}

	// Same points, radius 100m.
	eval = Evaluate(0, 0, 100, 0.001, 0)
	if eval.IsWithin {
		t.Errorf("expected outside, distance=%f", eval.DistanceMeters)
	}
}
