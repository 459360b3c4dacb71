package repositories

import (
	"context"
	"database/sql"
	"strings"

	"servioBack/internal/models"
)

type ProviderRepository struct {
	DB *sql.DB
}

// ListProviders fetches every user with role "provider" together with their
// location settings and specialty/base-price pairs. No specialty filter is
// applied here; the matcher narrows by specialty through the base-price
// lookup.
func (r *ProviderRepository) ListProviders(ctx context.Context) ([]models.ProviderProfile, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT u.id, u.name, u.phone, u.role, u.bio,
		       ps.city, ps.neighborhood, ps.latitude, ps.longitude, ps.service_radius_km
		FROM users u
		LEFT JOIN provider_settings ps ON ps.user_id = u.id
		WHERE u.role = ?`, models.RoleProvider)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	providers := make([]models.ProviderProfile, 0)
	index := make(map[int]int)
	for rows.Next() {
		var p models.ProviderProfile
		var city, neighborhood sql.NullString
		var lat, lon sql.NullFloat64
		var radius sql.NullFloat64
		if err := rows.Scan(&p.UserID, &p.Name, &p.Phone, &p.Role, &p.Bio, &city, &neighborhood, &lat, &lon, &radius); err != nil {
			return nil, err
		}
		p.City = city.String
		p.Neighborhood = neighborhood.String
		if lat.Valid && lon.Valid {
			latV, lonV := lat.Float64, lon.Float64
			p.Latitude = &latV
			p.Longitude = &lonV
			p.HasLocation = true
		}
		if radius.Valid {
			p.RadiusKm = radius.Float64
		}
		index[p.UserID] = len(providers)
		providers = append(providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	specRows, err := r.DB.QueryContext(ctx, `
		SELECT psp.user_id, psp.specialty_id, cs.name, psp.base_price
		FROM provider_specialties psp
		JOIN catalog_specialties cs ON cs.id = psp.specialty_id
		JOIN users u ON u.id = psp.user_id
		WHERE u.role = ?`, models.RoleProvider)
	if err != nil {
		return nil, err
	}
	defer specRows.Close()

	for specRows.Next() {
		var userID int
		var sp models.ProviderSpecialty
		if err := specRows.Scan(&userID, &sp.SpecialtyID, &sp.Name, &sp.BasePrice); err != nil {
			return nil, err
		}
		if i, ok := index[userID]; ok {
			providers[i].Specialties = append(providers[i].Specialties, sp)
		}
	}
	return providers, specRows.Err()
}

// ItemPrices returns the provider's configured unit prices for exactly the
// given item ids.
func (r *ProviderRepository) ItemPrices(ctx context.Context, providerID int, itemIDs []int) (map[int]models.ProviderItemPrice, error) {
	if len(itemIDs) == 0 {
		return map[int]models.ProviderItemPrice{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(itemIDs)), ",")
	args := make([]interface{}, 0, len(itemIDs)+1)
	args = append(args, providerID)
	for _, id := range itemIDs {
		args = append(args, id)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT pip.item_id, si.name, si.item_type, pip.price_per_unit
		FROM provider_item_prices pip
		JOIN service_items si ON si.id = pip.item_id
		WHERE pip.user_id = ? AND pip.item_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := make(map[int]models.ProviderItemPrice, len(itemIDs))
	for rows.Next() {
		var p models.ProviderItemPrice
		if err := rows.Scan(&p.ItemID, &p.ItemName, &p.ItemType, &p.PricePerUnit); err != nil {
			return nil, err
		}
		prices[p.ItemID] = p
	}
	return prices, rows.Err()
}
