package matching

import (
	"testing"

	"servioBack/internal/models"
)

func TestItemsTotal(t *testing.T) {
	prices := map[int]models.ProviderItemPrice{
		1: {ItemID: 1, ItemName: "door", ItemType: models.ItemTypeQuantity, PricePerUnit: 10.00},
		2: {ItemID: 2, ItemName: "window", ItemType: models.ItemTypeQuantity, PricePerUnit: 25.50},
	}

	cases := []struct {
		name  string
		items map[int]int
		want  float64
		lines int
	}{
		{"single item", map[int]int{1: 3}, 30.00, 1},
		{"two items", map[int]int{1: 3, 2: 2}, 81.00, 2},
		{"no matching price row", map[int]int{99: 4}, 0, 0},
		{"empty", nil, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			total, breakdown := ItemsTotal(tc.items, prices)
			if total != tc.want {
				t.Fatalf("expected %f got %f", tc.want, total)
			}
			if len(breakdown) != tc.lines {
				t.Fatalf("expected %d breakdown lines got %d", tc.lines, len(breakdown))
			}
		})
	}
}

func TestItemsTotalOrderIndependent(t *testing.T) {
	prices := map[int]models.ProviderItemPrice{
		1: {ItemID: 1, PricePerUnit: 7.5},
		2: {ItemID: 2, PricePerUnit: 3.25},
		3: {ItemID: 3, PricePerUnit: 11},
	}
	items := map[int]int{3: 1, 1: 2, 2: 4}

	first, _ := ItemsTotal(items, prices)
	for i := 0; i < 50; i++ {
		again, breakdown := ItemsTotal(items, prices)
		if again != first {
			t.Fatalf("total changed between runs: %f vs %f", first, again)
		}
		for j := 1; j < len(breakdown); j++ {
			if breakdown[j].ItemID < breakdown[j-1].ItemID {
				t.Fatalf("breakdown not in ascending item order: %+v", breakdown)
			}
		}
	}
}

func TestAreaPrice(t *testing.T) {
	measurements := []models.RoomMeasurement{{RoomName: "living room", Width: 2, Length: 3, Kind: models.MeasurementArea}}

	t.Run("area item rate", func(t *testing.T) {
		prices := map[int]models.ProviderItemPrice{
			5: {ItemID: 5, ItemName: "painting m2", ItemType: models.ItemTypeArea, PricePerUnit: 15.00},
		}
		total, entry := AreaPrice(measurements, prices, 200)
		if total != 90.00 {
			t.Fatalf("expected 90.00 got %f", total)
		}
		if entry == nil || entry.UnitPrice != 15.00 || entry.Quantity != 6 {
			t.Fatalf("unexpected breakdown entry: %+v", entry)
		}
	})

	t.Run("base price fallback", func(t *testing.T) {
		total, _ := AreaPrice(measurements, nil, 15.00)
		if total != 90.00 {
			t.Fatalf("expected 90.00 got %f", total)
		}
	})

	t.Run("precomputed area reused", func(t *testing.T) {
		area := 10.0
		ms := []models.RoomMeasurement{{Width: 2, Length: 3, Area: &area}}
		total, _ := AreaPrice(ms, nil, 2)
		if total != 20 {
			t.Fatalf("expected 20 got %f", total)
		}
	})

	t.Run("no measurements", func(t *testing.T) {
		total, entry := AreaPrice(nil, nil, 100)
		if total != 0 || entry != nil {
			t.Fatalf("expected no area price, got %f %+v", total, entry)
		}
	})
}

func TestBasePriceFor(t *testing.T) {
	specialty := 7
	other := 8
	p := models.ProviderProfile{Specialties: []models.ProviderSpecialty{{SpecialtyID: 7, BasePrice: 120}}}

	if got := BasePriceFor(p, &specialty); got != 120 {
		t.Fatalf("expected 120 got %f", got)
	}
	if got := BasePriceFor(p, &other); got != 0 {
		t.Fatalf("expected 0 for unoffered specialty got %f", got)
	}
	if got := BasePriceFor(p, nil); got != 0 {
		t.Fatalf("expected 0 without specialty got %f", got)
	}
}
