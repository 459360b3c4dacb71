package matching

import (
	"reflect"
	"testing"

	"servioBack/internal/models"
)

func match(id int, distance *float64, within bool, price, rating float64) models.ProviderMatch {
	return models.ProviderMatch{
		Provider:     models.ProviderProfile{UserID: id, AvgRating: rating},
		DistanceKm:   distance,
		TotalPrice:   price,
		WithinRadius: within,
	}
}

func ids(matches []models.ProviderMatch) []int {
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Provider.UserID
	}
	return out
}

func TestSortMatches(t *testing.T) {
	base := []models.ProviderMatch{
		match(1, ptr(80), false, 300, 4.0),
		match(2, ptr(12), true, 0, 3.5),
		match(3, nil, false, 150, 5.0),
		match(4, ptr(3), true, 200, 4.8),
		match(5, ptr(55), false, 90, 2.0),
	}

	cases := []struct {
		name      string
		criterion SortCriterion
		want      []int
	}{
		{"relevance puts in-radius first", SortRelevance, []int{4, 2, 5, 1, 3}},
		{"distance ascending nils last", SortDistance, []int{4, 2, 5, 1, 3}},
		{"price ascending zero last", SortPrice, []int{5, 3, 4, 1, 2}},
		{"rating descending", SortRating, []int{3, 4, 1, 2, 5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			matches := append([]models.ProviderMatch(nil), base...)
			SortMatches(matches, tc.criterion)
			if got := ids(matches); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v got %v", tc.want, got)
			}
		})
	}
}

func TestSortMatchesIdempotent(t *testing.T) {
	for _, criterion := range []SortCriterion{SortRelevance, SortDistance, SortPrice, SortRating} {
		matches := []models.ProviderMatch{
			match(1, ptr(10), true, 100, 4.0),
			match(2, ptr(10), true, 100, 4.0),
			match(3, ptr(40), false, 0, 4.5),
		}
		SortMatches(matches, criterion)
		once := ids(matches)
		SortMatches(matches, criterion)
		if got := ids(matches); !reflect.DeepEqual(got, once) {
			t.Fatalf("%s: expected stable re-sort %v got %v", criterion, once, got)
		}
	}
}

func TestSortRelevanceIgnoresDistanceAcrossRadius(t *testing.T) {
	// An out-of-radius provider closer than an in-radius one still sorts after it.
	matches := []models.ProviderMatch{
		match(1, ptr(5), false, 0, 0),
		match(2, ptr(45), true, 0, 0),
	}
	SortMatches(matches, SortRelevance)
	if got := ids(matches); !reflect.DeepEqual(got, []int{2, 1}) {
		t.Fatalf("expected [2 1] got %v", got)
	}
}

func TestTruncate(t *testing.T) {
	matches := []models.ProviderMatch{
		match(1, ptr(1), true, 0, 0),
		match(2, ptr(2), true, 0, 0),
		match(3, ptr(3), true, 0, 0),
		match(4, ptr(4), true, 0, 0),
		match(5, ptr(5), true, 0, 0),
	}

	limit := 3
	got := Truncate(matches, &limit)
	if !reflect.DeepEqual(ids(got), []int{1, 2, 3}) {
		t.Fatalf("expected first 3 in order got %v", ids(got))
	}

	if got := Truncate(matches, nil); len(got) != 5 {
		t.Fatalf("expected unlimited to keep all, got %d", len(got))
	}

	big := 10
	if got := Truncate(matches, &big); len(got) != 5 {
		t.Fatalf("expected limit above size to keep all, got %d", len(got))
	}
}
