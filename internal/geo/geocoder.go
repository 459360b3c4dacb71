package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultCatalogBaseURL   = "https://catalog.api.2gis.com"
	defaultNominatimBaseURL = "https://nominatim.openstreetmap.org"

	geocodeTimeout = 7 * time.Second
)

// Geocoder resolves free-text addresses through the 2GIS catalog API and
// falls back to the public Nominatim search endpoint when the primary has no
// answer.
type Geocoder struct {
	httpClient *http.Client
	apiKey     string
	regionID   string

	// Overridable in tests.
	CatalogBaseURL   string
	NominatimBaseURL string
}

func NewGeocoder(httpClient *http.Client, apiKey, regionID string) *Geocoder {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Geocoder{
		httpClient:       httpClient,
		apiKey:           apiKey,
		regionID:         regionID,
		CatalogBaseURL:   defaultCatalogBaseURL,
		NominatimBaseURL: defaultNominatimBaseURL,
	}
}

// tryParseLatLon returns lat,lon if query already looks like coordinates.
func tryParseLatLon(query string) (float64, float64, bool) {
	q := strings.TrimSpace(query)
	sep := ","
	if strings.Contains(q, ";") {
		sep = ";"
	}
	parts := strings.Split(q, sep)
	if len(parts) != 2 {
		return 0, 0, false
	}

	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}

// Geocode returns latitude and longitude for the given query.
func (g *Geocoder) Geocode(ctx context.Context, query string) (float64, float64, error) {
	if strings.TrimSpace(query) == "" {
		return 0, 0, errors.New("geocode: empty query")
	}

	// "lat,lon" short-circuits without hitting any API.
	if lat, lon, ok := tryParseLatLon(query); ok {
		return lat, lon, nil
	}

	ctx, cancel := context.WithTimeout(ctx, geocodeTimeout)
	defer cancel()

	lat, lon, primaryErr := g.geocodeCatalog(ctx, query)
	if primaryErr == nil {
		return lat, lon, nil
	}

	lat, lon, fallbackErr := g.geocodeNominatim(ctx, query)
	if fallbackErr == nil {
		return lat, lon, nil
	}
	return 0, 0, fmt.Errorf("geocode: primary: %v; fallback: %w", primaryErr, fallbackErr)
}

func (g *Geocoder) geocodeCatalog(ctx context.Context, query string) (float64, float64, error) {
	if g.apiKey == "" {
		return 0, 0, errors.New("no api key configured")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("key", g.apiKey)
	params.Set("fields", "items.point")
	params.Set("type", "building,street")
	params.Set("search_is_query_text_complete", "true")
	if g.regionID != "" {
		params.Set("region_id", g.regionID)
	}

	endpoint := fmt.Sprintf("%s/3.0/items/geocode?%s", g.CatalogBaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return 0, 0, fmt.Errorf("http %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	var payload struct {
		Result struct {
			Items []struct {
				Point struct {
					Lon float64 `json:"lon"`
					Lat float64 `json:"lat"`
				} `json:"point"`
			} `json:"items"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, 0, fmt.Errorf("decode: %w", err)
	}
	if len(payload.Result.Items) == 0 {
		return 0, 0, errors.New("no results")
	}
	p := payload.Result.Items[0].Point
	if p.Lat == 0 && p.Lon == 0 {
		return 0, 0, errors.New("zero coordinates")
	}
	return p.Lat, p.Lon, nil
}

func (g *Geocoder) geocodeNominatim(ctx context.Context, query string) (float64, float64, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	endpoint := fmt.Sprintf("%s/search?%s", g.NominatimBaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("build request: %w", err)
	}
	// Nominatim usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "servioBack/1.0")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return 0, 0, fmt.Errorf("http %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("decode: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, errors.New("no results")
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse lat: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse lon: %w", err)
	}
	return lat, lon, nil
}
