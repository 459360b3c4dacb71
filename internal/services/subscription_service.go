package services

import (
	"context"
	"log"
	"time"

	"servioBack/internal/models"
	"servioBack/internal/repositories"
)

// TierFree is the tier applied to users without an active subscription.
const TierFree = "free"

const (
	planFetchAttempts = 3
	planFetchBackoff  = 200 * time.Millisecond
)

// SubscriptionStore is the persistence surface the subscription service
// needs. SubscriptionRepository implements it.
type SubscriptionStore interface {
	GetPlans(ctx context.Context) ([]models.SubscriptionPlan, error)
	GetPlanByCode(ctx context.Context, code string) (models.SubscriptionPlan, error)
	GetSubscriberByUserID(ctx context.Context, userID int) (models.Subscriber, error)
	GetTierLimits(ctx context.Context, tier string) (models.TierLimits, error)
	UpsertSubscriberByEmail(ctx context.Context, sub models.Subscriber) error
	ExpireLapsed(ctx context.Context, now time.Time) (int, error)
}

type SubscriptionService struct {
	Store    SubscriptionStore
	Cache    *repositories.PlanCache
	ErrorLog *log.Logger
}

// GetPlans serves the pricing screen. Cached plans are preferred; the store
// is retried with bounded backoff on a miss so a brief outage does not blank
// the screen.
func (s *SubscriptionService) GetPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	if plans, ok := s.Cache.Get(ctx); ok {
		return plans, nil
	}
	var plans []models.SubscriptionPlan
	err := withBackoff(planFetchAttempts, planFetchBackoff, func() error {
		var ferr error
		plans, ferr = s.Store.GetPlans(ctx)
		return ferr
	})
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, plans)
	return plans, nil
}

func (s *SubscriptionService) GetPlanByCode(ctx context.Context, code string) (models.SubscriptionPlan, error) {
	return s.Store.GetPlanByCode(ctx, code)
}

// Entitlements resolves the tier limits for a user. Users without an active
// subscription get the free tier.
func (s *SubscriptionService) Entitlements(ctx context.Context, userID int) (models.TierLimits, error) {
	tier := TierFree
	if userID != 0 {
		sub, err := s.Store.GetSubscriberByUserID(ctx, userID)
		if err != nil {
			return models.TierLimits{}, err
		}
		if sub.Status == models.SubscriptionStatusActive && sub.Tier != "" {
			tier = sub.Tier
		}
	}
	return s.Store.GetTierLimits(ctx, tier)
}

// VisibleProvidersLimit returns how many matches the user may see, nil for
// unlimited. Lookup failures are logged and leave the list untruncated so a
// billing-store hiccup never hides results.
func (s *SubscriptionService) VisibleProvidersLimit(ctx context.Context, userID int) *int {
	limits, err := s.Entitlements(ctx, userID)
	if err != nil {
		if s.ErrorLog != nil {
			s.ErrorLog.Printf("entitlements for user %d: %v", userID, err)
		}
		return nil
	}
	return limits.VisibleProviders
}

func (s *SubscriptionService) ExpireLapsed(ctx context.Context, now time.Time) (int, error) {
	return s.Store.ExpireLapsed(ctx, now)
}
