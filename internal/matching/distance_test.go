package matching

import (
	"math"
	"testing"
)

func TestHaversineSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{-23.5505, -46.6333, -22.9068, -43.1729},
		{43.238949, 76.889709, 51.169392, 71.449074},
		{0, 0, 0, 180},
	}

	for _, p := range pairs {
		ab := haversineKm(p[0], p[1], p[2], p[3])
		ba := haversineKm(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Fatalf("expected symmetric distance, got %f and %f", ab, ba)
		}
	}
}

func TestHaversineZero(t *testing.T) {
	if d := haversineKm(-23.5505, -46.6333, -23.5505, -46.6333); d != 0 {
		t.Fatalf("expected 0 got %f", d)
	}
}

func TestHaversineSaoPauloRio(t *testing.T) {
	d := haversineKm(-23.5505, -46.6333, -22.9068, -43.1729)
	if d < 357 || d > 361 {
		t.Fatalf("expected ~357-361 km got %f", d)
	}
}

func TestDistanceKmMissingCoordinates(t *testing.T) {
	lat := -23.5505
	lon := -46.6333

	cases := []struct {
		name string
		lat  *float64
		lon  *float64
	}{
		{"both nil", nil, nil},
		{"missing longitude", &lat, nil},
		{"missing latitude", nil, &lon},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if d := DistanceKm(-23.5505, -46.6333, tc.lat, tc.lon); d != nil {
				t.Fatalf("expected nil got %f", *d)
			}
		})
	}

	if d := DistanceKm(-23.5505, -46.6333, &lat, &lon); d == nil || *d != 0 {
		t.Fatalf("expected 0 for same point")
	}
}
