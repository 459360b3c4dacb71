package matching

import (
	"sort"

	"servioBack/internal/models"
)

// BasePriceFor returns the provider's base price for the quote's specialty,
// or 0 when the provider does not offer it. Providers are fetched without a
// specialty filter, so this lookup is where the specialty actually narrows
// the candidate set.
func BasePriceFor(p models.ProviderProfile, specialtyID *int) float64 {
	if specialtyID == nil {
		return 0
	}
	for _, sp := range p.Specialties {
		if sp.SpecialtyID == *specialtyID {
			return sp.BasePrice
		}
	}
	return 0
}

// ItemsTotal multiplies each requested quantity by the provider's configured
// unit price. Items the provider has no price row for contribute nothing.
// Breakdown entries are emitted in ascending item-id order so the total and
// the breakdown are independent of map iteration order.
func ItemsTotal(items map[int]int, prices map[int]models.ProviderItemPrice) (float64, []models.PriceBreakdownEntry) {
	if len(items) == 0 {
		return 0, nil
	}

	ids := make([]int, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var total float64
	var breakdown []models.PriceBreakdownEntry
	for _, id := range ids {
		price, ok := prices[id]
		if !ok {
			continue
		}
		qty := float64(items[id])
		lineTotal := qty * price.PricePerUnit
		total += lineTotal
		breakdown = append(breakdown, models.PriceBreakdownEntry{
			ItemID:    id,
			ItemName:  price.ItemName,
			Quantity:  qty,
			UnitPrice: price.PricePerUnit,
			LineTotal: lineTotal,
		})
	}
	return total, breakdown
}

// TotalArea sums width*length across measurements, reusing a precomputed
// area when the wizard already calculated one.
func TotalArea(measurements []models.RoomMeasurement) float64 {
	var total float64
	for _, m := range measurements {
		if m.Area != nil {
			total += *m.Area
			continue
		}
		total += m.Width * m.Length
	}
	return total
}

// AreaPrice prices the measured area with the provider's area-typed item
// rate; when no area item was fetched the provider's base price doubles as
// the per-m² rate.
func AreaPrice(measurements []models.RoomMeasurement, prices map[int]models.ProviderItemPrice, basePrice float64) (float64, *models.PriceBreakdownEntry) {
	if len(measurements) == 0 {
		return 0, nil
	}

	area := TotalArea(measurements)
	rate := basePrice
	entry := models.PriceBreakdownEntry{ItemName: "area", Quantity: area}

	ids := make([]int, 0, len(prices))
	for id := range prices {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if isAreaType(prices[id].ItemType) {
			rate = prices[id].PricePerUnit
			entry.ItemID = id
			entry.ItemName = prices[id].ItemName
			break
		}
	}

	entry.UnitPrice = rate
	entry.LineTotal = area * rate
	return entry.LineTotal, &entry
}

func isAreaType(itemType string) bool {
	return itemType == models.ItemTypeArea || itemType == models.ItemTypeMaxArea
}
