package matching

import (
	"context"
	"fmt"
	"strings"

	"servioBack/internal/models"
)

// ProviderSource lists candidate providers with their settings and
// specialty/base-price pairs.
type ProviderSource interface {
	ListProviders(ctx context.Context) ([]models.ProviderProfile, error)
}

// PriceSource fetches a provider's configured unit prices for a set of items.
type PriceSource interface {
	ItemPrices(ctx context.Context, providerID int, itemIDs []int) (map[int]models.ProviderItemPrice, error)
}

// RatingSource aggregates a provider's ratings into an arithmetic mean.
type RatingSource interface {
	AverageRating(ctx context.Context, providerID int) (float64, error)
}

// Geocoder resolves a free-text address into latitude/longitude.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (lat, lon float64, err error)
}

type Logger interface {
	Printf(format string, v ...interface{})
}

type Matcher struct {
	Providers ProviderSource
	Prices    PriceSource
	Ratings   RatingSource
	Geo       Geocoder
	ErrorLog  Logger
}

// FindMatches computes the match list for a submitted quote. Every failure
// degrades to an empty list so the search screen stays renderable; the
// caller is responsible for visibility-limit truncation.
func (m *Matcher) FindMatches(ctx context.Context, quote models.QuoteDetails) []models.ProviderMatch {
	reqLat, reqLon, ok := m.resolveCoordinates(ctx, quote.Address)
	if !ok {
		return []models.ProviderMatch{}
	}

	providers, err := m.Providers.ListProviders(ctx)
	if err != nil {
		m.logf("matcher: list providers: %v", err)
		return []models.ProviderMatch{}
	}

	matches := make([]models.ProviderMatch, 0, len(providers))
	for _, p := range providers {
		if !p.HasLocation || p.Latitude == nil || p.Longitude == nil {
			continue
		}

		dist := DistanceKm(reqLat, reqLon, p.Latitude, p.Longitude)
		if dist == nil {
			continue
		}

		radius := p.RadiusKm
		if radius <= 0 {
			radius = models.DefaultServiceRadiusKm
		}
		withinRadius := *dist <= radius

		basePrice := BasePriceFor(p, quote.SpecialtyID)

		var prices map[int]models.ProviderItemPrice
		if len(quote.Items) > 0 {
			ids := make([]int, 0, len(quote.Items))
			for id := range quote.Items {
				ids = append(ids, id)
			}
			prices, err = m.Prices.ItemPrices(ctx, p.UserID, ids)
			if err != nil {
				m.logf("matcher: item prices for provider %d: %v", p.UserID, err)
				return []models.ProviderMatch{}
			}
		}

		itemsTotal, breakdown := ItemsTotal(quote.Items, prices)
		areaTotal, areaEntry := AreaPrice(quote.Measurements, prices, basePrice)
		if areaEntry != nil {
			breakdown = append(breakdown, *areaEntry)
		}

		avg, err := m.Ratings.AverageRating(ctx, p.UserID)
		if err != nil {
			m.logf("matcher: ratings for provider %d: %v", p.UserID, err)
			return []models.ProviderMatch{}
		}
		p.AvgRating = avg

		matches = append(matches, models.ProviderMatch{
			Provider:     p,
			DistanceKm:   dist,
			TotalPrice:   basePrice + itemsTotal + areaTotal,
			WithinRadius: withinRadius,
			Breakdown:    breakdown,
		})
	}

	SortMatches(matches, SortRelevance)
	return matches
}

func (m *Matcher) resolveCoordinates(ctx context.Context, addr models.Address) (float64, float64, bool) {
	if addr.Latitude != nil && addr.Longitude != nil {
		return *addr.Latitude, *addr.Longitude, true
	}
	if m.Geo == nil {
		return 0, 0, false
	}
	lat, lon, err := m.Geo.Geocode(ctx, AddressQuery(addr))
	if err != nil {
		m.logf("matcher: geocode: %v", err)
		return 0, 0, false
	}
	return lat, lon, true
}

// AddressQuery concatenates the address parts the way the request wizard
// collected them, skipping blanks.
func AddressQuery(addr models.Address) string {
	parts := make([]string, 0, 5)
	street := strings.TrimSpace(addr.Street)
	if street != "" && strings.TrimSpace(addr.Number) != "" {
		street = fmt.Sprintf("%s, %s", street, strings.TrimSpace(addr.Number))
	}
	for _, part := range []string{street, addr.Neighborhood, addr.City, addr.State} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, strings.TrimSpace(part))
		}
	}
	return strings.Join(parts, ", ")
}

func (m *Matcher) logf(format string, v ...interface{}) {
	if m.ErrorLog != nil {
		m.ErrorLog.Printf(format, v...)
	}
}
