package matching

import (
	"sort"

	"servioBack/internal/models"
)

type SortCriterion string

const (
	SortRelevance SortCriterion = "relevance"
	SortDistance  SortCriterion = "distance"
	SortPrice     SortCriterion = "price"
	SortRating    SortCriterion = "rating"
)

// SortMatches re-orders the already-computed list in place. Sorts are stable
// so re-applying the same criterion is idempotent and relevance keeps
// distance as the tie-breaker.
func SortMatches(matches []models.ProviderMatch, criterion SortCriterion) {
	switch criterion {
	case SortDistance:
		sort.SliceStable(matches, func(i, j int) bool {
			return lessDistance(matches[i], matches[j])
		})
	case SortPrice:
		// Zero-price means "unknown" and sorts after every priced match.
		sort.SliceStable(matches, func(i, j int) bool {
			a, b := matches[i].TotalPrice, matches[j].TotalPrice
			if a == 0 {
				return false
			}
			if b == 0 {
				return true
			}
			return a < b
		})
	case SortRating:
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Provider.AvgRating > matches[j].Provider.AvgRating
		})
	default:
		// Relevance: every in-radius match before every out-of-radius match,
		// ties broken by ascending distance.
		sort.SliceStable(matches, func(i, j int) bool {
			if matches[i].WithinRadius != matches[j].WithinRadius {
				return matches[i].WithinRadius
			}
			return lessDistance(matches[i], matches[j])
		})
	}
}

func lessDistance(a, b models.ProviderMatch) bool {
	if a.DistanceKm == nil {
		return false
	}
	if b.DistanceKm == nil {
		return true
	}
	return *a.DistanceKm < *b.DistanceKm
}

// Truncate applies a subscription tier's visible-providers limit. A nil
// limit means unlimited.
func Truncate(matches []models.ProviderMatch, limit *int) []models.ProviderMatch {
	if limit == nil || *limit < 0 || len(matches) <= *limit {
		return matches
	}
	return matches[:*limit]
}
