package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTryParseLatLon(t *testing.T) {
	cases := []struct {
		name string
		in   string
		lat  float64
		lon  float64
		ok   bool
	}{
		{"comma", "-23.5505,-46.6333", -23.5505, -46.6333, true},
		{"semicolon", "-23.5505; -46.6333", -23.5505, -46.6333, true},
		{"out of range", "123,45", 0, 0, false},
		{"free text", "Av. Paulista, 1000", 0, 0, false},
		{"empty", "", 0, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lat, lon, ok := tryParseLatLon(tc.in)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v got %v", tc.ok, ok)
			}
			if ok && (lat != tc.lat || lon != tc.lon) {
				t.Fatalf("expected %f,%f got %f,%f", tc.lat, tc.lon, lat, lon)
			}
		})
	}
}

func TestGeocodeShortCircuitsCoordinates(t *testing.T) {
	g := NewGeocoder(nil, "", "")
	lat, lon, err := g.Geocode(context.Background(), "-23.5505,-46.6333")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lat != -23.5505 || lon != -46.6333 {
		t.Fatalf("got %f,%f", lat, lon)
	}
}

func TestGeocodePrimary(t *testing.T) {
	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "" {
			t.Fatal("missing query")
		}
		w.Write([]byte(`{"result":{"items":[{"point":{"lon":-46.6333,"lat":-23.5505}}]}}`))
	}))
	defer catalog.Close()

	g := NewGeocoder(catalog.Client(), "test-key", "")
	g.CatalogBaseURL = catalog.URL

	lat, lon, err := g.Geocode(context.Background(), "Av. Paulista, 1000, São Paulo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lat != -23.5505 || lon != -46.6333 {
		t.Fatalf("got %f,%f", lat, lon)
	}
}

func TestGeocodeFallsBackToNominatim(t *testing.T) {
	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{"items":[]}}`))
	}))
	defer catalog.Close()

	nominatim := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Fatal("missing user agent")
		}
		w.Write([]byte(`[{"lat":"-22.9068","lon":"-43.1729"}]`))
	}))
	defer nominatim.Close()

	g := NewGeocoder(catalog.Client(), "test-key", "")
	g.CatalogBaseURL = catalog.URL
	g.NominatimBaseURL = nominatim.URL

	lat, lon, err := g.Geocode(context.Background(), "Copacabana, Rio de Janeiro")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lat != -22.9068 || lon != -43.1729 {
		t.Fatalf("got %f,%f", lat, lon)
	}
}

func TestGeocodeBothFail(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer down.Close()

	g := NewGeocoder(down.Client(), "test-key", "")
	g.CatalogBaseURL = down.URL
	g.NominatimBaseURL = down.URL

	if _, _, err := g.Geocode(context.Background(), "nowhere at all"); err == nil {
		t.Fatal("expected error")
	}
}

func TestGeocodeEmptyQuery(t *testing.T) {
	g := NewGeocoder(nil, "", "")
	if _, _, err := g.Geocode(context.Background(), "   "); err == nil {
		t.Fatal("expected error")
	}
}
