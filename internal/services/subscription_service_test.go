package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"servioBack/internal/models"
)

type stubSubscriptionStore struct {
	plans        []models.SubscriptionPlan
	plansErr     error
	plansCalls   int
	failFirst    int
	subscriber   models.Subscriber
	subErr       error
	limits       map[string]models.TierLimits
	upserts      []models.Subscriber
	expiredCount int
}

func (s *stubSubscriptionStore) GetPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	s.plansCalls++
	if s.plansCalls <= s.failFirst {
		return nil, errors.New("store unavailable")
	}
	return s.plans, s.plansErr
}

func (s *stubSubscriptionStore) GetPlanByCode(ctx context.Context, code string) (models.SubscriptionPlan, error) {
	for _, p := range s.plans {
		if p.Code == code {
			return p, nil
		}
	}
	return models.SubscriptionPlan{}, models.ErrPlanNotFound
}

func (s *stubSubscriptionStore) GetSubscriberByUserID(ctx context.Context, userID int) (models.Subscriber, error) {
	return s.subscriber, s.subErr
}

func (s *stubSubscriptionStore) GetTierLimits(ctx context.Context, tier string) (models.TierLimits, error) {
	return s.limits[tier], nil
}

func (s *stubSubscriptionStore) UpsertSubscriberByEmail(ctx context.Context, sub models.Subscriber) error {
	s.upserts = append(s.upserts, sub)
	return nil
}

func (s *stubSubscriptionStore) ExpireLapsed(ctx context.Context, now time.Time) (int, error) {
	return s.expiredCount, nil
}

func intPtr(v int) *int { return &v }

func TestVisibleProvidersLimitFreeTier(t *testing.T) {
	store := &stubSubscriptionStore{
		limits: map[string]models.TierLimits{
			TierFree: {Tier: TierFree, VisibleProviders: intPtr(3)},
		},
	}
	svc := &SubscriptionService{Store: store}

	limit := svc.VisibleProvidersLimit(context.Background(), 0)
	if limit == nil || *limit != 3 {
		t.Fatalf("expected limit 3 got %v", limit)
	}
}

func TestVisibleProvidersLimitActiveSubscriber(t *testing.T) {
	store := &stubSubscriptionStore{
		subscriber: models.Subscriber{
			UserID: 5,
			Tier:   "pro",
			Status: models.SubscriptionStatusActive,
		},
		limits: map[string]models.TierLimits{
			TierFree: {Tier: TierFree, VisibleProviders: intPtr(3)},
			"pro":    {Tier: "pro"},
		},
	}
	svc := &SubscriptionService{Store: store}

	limit := svc.VisibleProvidersLimit(context.Background(), 5)
	if limit != nil {
		t.Fatalf("expected unlimited for pro tier, got %d", *limit)
	}
}

func TestVisibleProvidersLimitCanceledFallsBackToFree(t *testing.T) {
	store := &stubSubscriptionStore{
		subscriber: models.Subscriber{
			UserID: 5,
			Tier:   "pro",
			Status: models.SubscriptionStatusCanceled,
		},
		limits: map[string]models.TierLimits{
			TierFree: {Tier: TierFree, VisibleProviders: intPtr(3)},
		},
	}
	svc := &SubscriptionService{Store: store}

	limit := svc.VisibleProvidersLimit(context.Background(), 5)
	if limit == nil || *limit != 3 {
		t.Fatalf("expected free-tier limit 3 got %v", limit)
	}
}

func TestVisibleProvidersLimitStoreErrorLeavesUntruncated(t *testing.T) {
	store := &stubSubscriptionStore{subErr: errors.New("store down")}
	svc := &SubscriptionService{Store: store}

	if limit := svc.VisibleProvidersLimit(context.Background(), 5); limit != nil {
		t.Fatalf("expected nil limit on store error, got %d", *limit)
	}
}

func TestGetPlansRetriesWithBackoff(t *testing.T) {
	store := &stubSubscriptionStore{
		plans:     []models.SubscriptionPlan{{Code: "basic"}},
		failFirst: 2,
	}
	svc := &SubscriptionService{Store: store}

	plans, err := svc.GetPlans(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plans) != 1 || plans[0].Code != "basic" {
		t.Fatalf("unexpected plans: %v", plans)
	}
	if store.plansCalls != 3 {
		t.Fatalf("expected 3 attempts got %d", store.plansCalls)
	}
}

func TestGetPlansGivesUpAfterThreeAttempts(t *testing.T) {
	store := &stubSubscriptionStore{failFirst: 10}
	svc := &SubscriptionService{Store: store}

	if _, err := svc.GetPlans(context.Background()); err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if store.plansCalls != 3 {
		t.Fatalf("expected 3 attempts got %d", store.plansCalls)
	}
}
