package services

import (
	"context"

	"servioBack/internal/matching"
	"servioBack/internal/models"
)

type MatchService struct {
	Matcher      *matching.Matcher
	Subscription *SubscriptionService
}

// SearchProviders runs the matcher for a quote, re-sorts by the caller's
// criterion and truncates to the requester's subscription-tier visibility
// limit. Failures inside the matcher already degrade to an empty list.
func (s *MatchService) SearchProviders(ctx context.Context, quote models.QuoteDetails, criterion matching.SortCriterion, requesterID int) []models.ProviderMatch {
	matches := s.Matcher.FindMatches(ctx, quote)
	matching.SortMatches(matches, criterion)

	var limit *int
	if s.Subscription != nil {
		limit = s.Subscription.VisibleProvidersLimit(ctx, requesterID)
	}
	return matching.Truncate(matches, limit)
}
