package services

import (
	"context"
	"encoding/json"
	"testing"

	"servioBack/internal/models"
)

type stubUserLookup struct {
	user models.User
}

func (s *stubUserLookup) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.user, nil
}

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) NotifyUser(userID int, event string, payload interface{}) {
	n.events = append(n.events, event)
}

func newWebhookFixture() (*BillingService, *stubSubscriptionStore, *recordingNotifier) {
	store := &stubSubscriptionStore{
		plans: []models.SubscriptionPlan{
			{Code: "basic", StripePriceID: "price_basic", Tier: "basic"},
			{Code: "pro", StripePriceID: "price_pro", Tier: "pro"},
		},
	}
	notifier := &recordingNotifier{}
	svc := &BillingService{
		Subscriptions: store,
		Users:         &stubUserLookup{user: models.User{ID: 42, Email: "ana@example.com"}},
		Notifier:      notifier,
		CustomerEmail: func(ctx context.Context, customerID string) (string, error) {
			return "ana@example.com", nil
		},
	}
	return svc, store, notifier
}

const subscriptionCreatedEvent = `{
	"id": "sub_1",
	"customer": "cus_1",
	"status": "active",
	"current_period_end": 1767225600,
	"items": {"data": [{"price": {"id": "price_pro"}}]}
}`

func TestWebhookSubscriptionCreated(t *testing.T) {
	svc, store, notifier := newWebhookFixture()

	err := svc.HandleWebhookEvent(context.Background(), "customer.subscription.created",
		json.RawMessage(subscriptionCreatedEvent))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.upserts) != 1 {
		t.Fatalf("expected 1 upsert got %d", len(store.upserts))
	}
	sub := store.upserts[0]
	if sub.Email != "ana@example.com" {
		t.Fatalf("unexpected email %q", sub.Email)
	}
	if sub.Status != models.SubscriptionStatusActive {
		t.Fatalf("unexpected status %q", sub.Status)
	}
	if sub.PlanCode != "pro" || sub.Tier != "pro" {
		t.Fatalf("price not mapped to plan: %+v", sub)
	}
	if sub.CurrentPeriodEnd == nil {
		t.Fatal("period end not carried over")
	}
	if len(notifier.events) != 1 || notifier.events[0] != "subscription_updated" {
		t.Fatalf("unexpected notifications: %v", notifier.events)
	}
}

func TestWebhookRedeliveryUpsertsSameRecord(t *testing.T) {
	svc, store, _ := newWebhookFixture()
	payload := json.RawMessage(subscriptionCreatedEvent)

	for i := 0; i < 2; i++ {
		if err := svc.HandleWebhookEvent(context.Background(), "customer.subscription.updated", payload); err != nil {
			t.Fatalf("delivery %d: %v", i+1, err)
		}
	}

	if len(store.upserts) != 2 {
		t.Fatalf("expected 2 upserts got %d", len(store.upserts))
	}
	if store.upserts[0].Email != store.upserts[1].Email ||
		store.upserts[0].StripeSubscriptionID != store.upserts[1].StripeSubscriptionID {
		t.Fatalf("redelivery produced a different record: %+v vs %+v",
			store.upserts[0], store.upserts[1])
	}
}

func TestWebhookSubscriptionDeleted(t *testing.T) {
	svc, store, _ := newWebhookFixture()

	err := svc.HandleWebhookEvent(context.Background(), "customer.subscription.deleted",
		json.RawMessage(subscriptionCreatedEvent))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.upserts[0].Status != models.SubscriptionStatusCanceled {
		t.Fatalf("expected canceled got %q", store.upserts[0].Status)
	}
}

func TestWebhookPaymentFailed(t *testing.T) {
	svc, store, notifier := newWebhookFixture()

	err := svc.HandleWebhookEvent(context.Background(), "invoice.payment_failed",
		json.RawMessage(`{"id":"in_1","customer":"cus_1","customer_email":"ana@example.com"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.upserts[0].Status != models.SubscriptionStatusPastDue {
		t.Fatalf("expected past_due got %q", store.upserts[0].Status)
	}
	if len(notifier.events) != 1 || notifier.events[0] != "payment_failed" {
		t.Fatalf("unexpected notifications: %v", notifier.events)
	}
}

func TestWebhookIgnoresUnknownEvents(t *testing.T) {
	svc, store, _ := newWebhookFixture()

	err := svc.HandleWebhookEvent(context.Background(), "charge.succeeded", json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.upserts) != 0 {
		t.Fatalf("unknown event touched the store: %v", store.upserts)
	}
}
