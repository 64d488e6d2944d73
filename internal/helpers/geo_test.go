package helpers

import (
	"math"
	"testing"
)

func TestHaversineDistanceZero(t *testing.T) {
	if d := HaversineDistance(28.6139, 77.2090, 28.6139, 77.2090); d != 0 {
		t.Errorf("expected zero distance for identical points, got %f", d)
	}
}

func TestHaversineDistanceSymmetry(t *testing.T) {
	a := HaversineDistance(28.6139, 77.2090, 19.0760, 72.8777)
	b := HaversineDistance(19.0760, 72.8777, 28.6139, 77.2090)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("distance is not symmetric: %f vs %f", a, b)
	}
}

func TestHaversineDistanceKnown(t *testing.T) {
	// Delhi to Mumbai is roughly 1150 km.
	d := HaversineDistance(28.6139, 77.2090, 19.0760, 72.8777)
	if d < 1100 || d > 1200 {
		t.Errorf("Delhi-Mumbai distance out of range: %f", d)
	}

	// Two points ~1.11 km apart (0.01 degrees of latitude).
	d = HaversineDistance(28.60, 77.20, 28.61, 77.20)
	if d < 1.0 || d > 1.2 {
		t.Errorf("short distance out of range: %f", d)
	}
}

func TestRoundDistance(t *testing.T) {
	if got := RoundDistance(3.14159); got != 3.14 {
		t.Errorf("RoundDistance(3.14159) = %f, want 3.14", got)
	}
	if got := RoundDistance(2.005); got != 2.01 && got != 2.0 {
		// 2.005 is not exactly representable; either neighbour is acceptable.
		t.Errorf("RoundDistance(2.005) = %f", got)
	}
}

func TestRoundRating(t *testing.T) {
	if got := RoundRating(4.666666); got != 4.7 {
		t.Errorf("RoundRating(4.666666) = %f, want 4.7", got)
	}
	if got := RoundRating(5); got != 5 {
		t.Errorf("RoundRating(5) = %f, want 5", got)
	}
}

func TestValidCoordinates(t *testing.T) {
	cases := []struct {
		lat, lon float64
		want     bool
	}{
		{28.6139, 77.2090, true},
		{-90, -180, true},
		{90, 180, true},
		{91, 0, false},
		{0, 181, false},
		{math.NaN(), 77.2, false},
		{28.6, math.NaN(), false},
	}
	for _, tc := range cases {
		if got := ValidCoordinates(tc.lat, tc.lon); got != tc.want {
			t.Errorf("ValidCoordinates(%f, %f) = %v, want %v", tc.lat, tc.lon, got, tc.want)
		}
	}
}
