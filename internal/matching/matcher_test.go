package matching

import (
	"context"
	"errors"
	"testing"

	"servioBack/internal/models"
)

type stubProviders struct {
	providers []models.ProviderProfile
	err       error
}

func (s *stubProviders) ListProviders(ctx context.Context) ([]models.ProviderProfile, error) {
	return s.providers, s.err
}

type stubPrices struct {
	prices map[int]models.ProviderItemPrice
}

func (s *stubPrices) ItemPrices(ctx context.Context, providerID int, itemIDs []int) (map[int]models.ProviderItemPrice, error) {
	return s.prices, nil
}

type stubRatings struct {
	avg map[int]float64
}

func (s *stubRatings) AverageRating(ctx context.Context, providerID int) (float64, error) {
	return s.avg[providerID], nil
}

type stubGeocoder struct {
	lat, lon float64
	err      error
	calls    int
}

func (s *stubGeocoder) Geocode(ctx context.Context, query string) (float64, float64, error) {
	s.calls++
	return s.lat, s.lon, s.err
}

func ptr(f float64) *float64 { return &f }

func provider(id int, lat, lon *float64, radius float64, specialtyID int, basePrice float64) models.ProviderProfile {
	return models.ProviderProfile{
		UserID:      id,
		Role:        models.RoleProvider,
		HasLocation: lat != nil && lon != nil,
		Latitude:    lat,
		Longitude:   lon,
		RadiusKm:    radius,
		Specialties: []models.ProviderSpecialty{{SpecialtyID: specialtyID, BasePrice: basePrice}},
	}
}

func quoteAt(lat, lon float64, specialtyID int) models.QuoteDetails {
	return models.QuoteDetails{
		ServiceID:   1,
		SpecialtyID: &specialtyID,
		Address:     models.Address{Latitude: ptr(lat), Longitude: ptr(lon)},
	}
}

func newMatcher(providers ...models.ProviderProfile) *Matcher {
	return &Matcher{
		Providers: &stubProviders{providers: providers},
		Prices:    &stubPrices{},
		Ratings:   &stubRatings{},
	}
}

func TestFindMatchesSkipsProvidersWithoutLocation(t *testing.T) {
	m := newMatcher(
		provider(1, nil, nil, 50, 7, 100),
		provider(2, ptr(-23.55), ptr(-46.63), 50, 7, 100),
	)

	matches := m.FindMatches(context.Background(), quoteAt(-23.5505, -46.6333, 7))
	if len(matches) != 1 {
		t.Fatalf("expected 1 match got %d", len(matches))
	}
	if matches[0].Provider.UserID != 2 {
		t.Fatalf("expected provider 2 got %d", matches[0].Provider.UserID)
	}
}

func TestFindMatchesRadiusFlag(t *testing.T) {
	// Provider roughly 357 km away from the request point.
	rio := provider(1, ptr(-22.9068), ptr(-43.1729), 0, 7, 100)
	near := provider(2, ptr(-23.56), ptr(-46.64), 0, 7, 100)

	m := newMatcher(rio, near)
	matches := m.FindMatches(context.Background(), quoteAt(-23.5505, -46.6333, 7))
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches got %d", len(matches))
	}

	// Out-of-radius providers are flagged, not dropped, and sort last. The
	// configured radius was zero, so the 50 km default applies.
	if !matches[0].WithinRadius || matches[0].Provider.UserID != 2 {
		t.Fatalf("expected in-radius provider first, got %+v", matches[0])
	}
	if matches[1].WithinRadius {
		t.Fatalf("expected provider 1 flagged out of radius")
	}
}

func TestFindMatchesRadiusBoundary(t *testing.T) {
	// ~111 km north of the request; within a 120 km radius, outside 100 km.
	far := provider(1, ptr(-22.5505), ptr(-46.6333), 120, 7, 100)
	m := newMatcher(far)
	matches := m.FindMatches(context.Background(), quoteAt(-23.5505, -46.6333, 7))
	if len(matches) != 1 || !matches[0].WithinRadius {
		t.Fatalf("expected within 120 km radius: %+v", matches)
	}

	far.RadiusKm = 100
	m = newMatcher(far)
	matches = m.FindMatches(context.Background(), quoteAt(-23.5505, -46.6333, 7))
	if len(matches) != 1 || matches[0].WithinRadius {
		t.Fatalf("expected outside 100 km radius: %+v", matches)
	}
}

func TestFindMatchesPriceAggregation(t *testing.T) {
	p := provider(1, ptr(-23.55), ptr(-46.63), 50, 7, 100)
	quote := quoteAt(-23.5505, -46.6333, 7)
	quote.Items = map[int]int{3: 3}
	quote.Measurements = []models.RoomMeasurement{{Width: 2, Length: 3, Kind: models.MeasurementArea}}

	m := newMatcher(p)
	m.Prices = &stubPrices{prices: map[int]models.ProviderItemPrice{
		3: {ItemID: 3, ItemName: "socket", ItemType: models.ItemTypeQuantity, PricePerUnit: 10},
		9: {ItemID: 9, ItemName: "paint m2", ItemType: models.ItemTypeArea, PricePerUnit: 15},
	}}

	matches := m.FindMatches(context.Background(), quote)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match got %d", len(matches))
	}
	// base 100 + items 30 + area 6*15
	if matches[0].TotalPrice != 220 {
		t.Fatalf("expected total 220 got %f", matches[0].TotalPrice)
	}
	if len(matches[0].Breakdown) != 2 {
		t.Fatalf("expected 2 breakdown entries got %d", len(matches[0].Breakdown))
	}
}

func TestFindMatchesGeocodeFailureYieldsEmpty(t *testing.T) {
	m := newMatcher(provider(1, ptr(-23.55), ptr(-46.63), 50, 7, 100))
	m.Geo = &stubGeocoder{err: errors.New("no results")}

	quote := models.QuoteDetails{ServiceID: 1, Address: models.Address{Street: "Av. Paulista", Number: "1000", City: "São Paulo", State: "SP"}}
	matches := m.FindMatches(context.Background(), quote)
	if matches == nil || len(matches) != 0 {
		t.Fatalf("expected empty non-nil list got %v", matches)
	}
}

func TestFindMatchesGeocodesWhenCoordinatesMissing(t *testing.T) {
	m := newMatcher(provider(1, ptr(-23.55), ptr(-46.63), 50, 7, 100))
	geo := &stubGeocoder{lat: -23.5505, lon: -46.6333}
	m.Geo = geo

	quote := models.QuoteDetails{ServiceID: 1, SpecialtyID: func() *int { v := 7; return &v }(), Address: models.Address{Street: "Av. Paulista", Number: "1000", City: "São Paulo", State: "SP"}}
	matches := m.FindMatches(context.Background(), quote)
	if geo.calls != 1 {
		t.Fatalf("expected one geocode call got %d", geo.calls)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match got %d", len(matches))
	}
}

func TestFindMatchesProviderFetchErrorYieldsEmpty(t *testing.T) {
	m := newMatcher()
	m.Providers = &stubProviders{err: errors.New("connection refused")}

	matches := m.FindMatches(context.Background(), quoteAt(-23.5505, -46.6333, 7))
	if matches == nil || len(matches) != 0 {
		t.Fatalf("expected empty non-nil list got %v", matches)
	}
}

func TestAddressQuery(t *testing.T) {
	addr := models.Address{Street: "Rua Augusta", Number: "500", Neighborhood: "Consolação", City: "São Paulo", State: "SP"}
	want := "Rua Augusta, 500, Consolação, São Paulo, SP"
	if got := AddressQuery(addr); got != want {
		t.Fatalf("expected %q got %q", want, got)
	}
}
