package models

// DefaultServiceRadiusKm is used when a provider has not configured a radius.
const DefaultServiceRadiusKm = 50.0

type ProviderSpecialty struct {
	SpecialtyID int     `json:"specialty_id"`
	Name        string  `json:"name"`
	BasePrice   float64 `json:"base_price"`
}

// ProviderItemPrice is a provider's configured unit price for one catalog item.
type ProviderItemPrice struct {
	ItemID       int     `json:"item_id"`
	ItemName     string  `json:"item_name"`
	ItemType     string  `json:"item_type"`
	PricePerUnit float64 `json:"price_per_unit"`
}

type ProviderProfile struct {
	UserID       int                 `json:"user_id"`
	Name         string              `json:"name"`
	Phone        string              `json:"phone"`
	Role         string              `json:"role"`
	Bio          string              `json:"bio,omitempty"`
	City         string              `json:"city,omitempty"`
	Neighborhood string              `json:"neighborhood,omitempty"`
	AvgRating    float64             `json:"avg_rating"`
	Specialties  []ProviderSpecialty `json:"specialties"`
	HasLocation  bool                `json:"has_location"`
	Latitude     *float64            `json:"latitude,omitempty"`
	Longitude    *float64            `json:"longitude,omitempty"`
	RadiusKm     float64             `json:"service_radius_km"`
}

type PriceBreakdownEntry struct {
	ItemID    int     `json:"item_id"`
	ItemName  string  `json:"item_name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// ProviderMatch is the computed result for one provider against one quote.
// Matches are recomputed on every search and never persisted.
type ProviderMatch struct {
	Provider     ProviderProfile       `json:"provider"`
	DistanceKm   *float64              `json:"distance_km,omitempty"`
	TotalPrice   float64               `json:"total_price"`
	WithinRadius bool                  `json:"within_radius"`
	Breakdown    []PriceBreakdownEntry `json:"breakdown,omitempty"`
}
