package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/stripe/stripe-go/v76"
	portalsession "github.com/stripe/stripe-go/v76/billingportal/session"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/customer"

	"servioBack/internal/models"
)

const (
	stripeCallTimeout = 15 * time.Second
	checkoutAttempts  = 3
	checkoutBackoff   = 300 * time.Millisecond
)

// PushSender delivers a push notification to a device token. The FCM client
// wrapper in cmd implements it.
type PushSender interface {
	SendPush(ctx context.Context, fcmToken, title, body string) error
}

// UserLookup is the slice of the user repository billing needs to map a
// Stripe customer email back to an account.
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

type BillingService struct {
	Subscriptions SubscriptionStore
	Users         UserLookup
	Notifier      Notifier
	Push          PushSender
	ErrorLog      *log.Logger

	SuccessURL string
	CancelURL  string
	ReturnURL  string

	// CustomerEmail resolves a Stripe customer id to the customer's email.
	// Overridable so webhook tests never touch the network.
	CustomerEmail func(ctx context.Context, customerID string) (string, error)
}

// CreateCheckoutSession opens a Stripe subscription checkout for the given
// plan and returns the hosted payment URL. Retried with bounded backoff.
func (s *BillingService) CreateCheckoutSession(ctx context.Context, user models.User, planCode string) (string, error) {
	plan, err := s.Subscriptions.GetPlanByCode(ctx, planCode)
	if err != nil {
		return "", err
	}

	var url string
	err = withBackoff(checkoutAttempts, checkoutBackoff, func() error {
		callCtx, cancel := context.WithTimeout(ctx, stripeCallTimeout)
		defer cancel()

		params := &stripe.CheckoutSessionParams{
			Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
			LineItems: []*stripe.CheckoutSessionLineItemParams{{
				Price:    stripe.String(plan.StripePriceID),
				Quantity: stripe.Int64(1),
			}},
			CustomerEmail: stripe.String(user.Email),
			SuccessURL:    stripe.String(s.SuccessURL),
			CancelURL:     stripe.String(s.CancelURL),
		}
		params.Context = callCtx

		sess, serr := session.New(params)
		if serr != nil {
			return serr
		}
		url = sess.URL
		return nil
	})
	return url, err
}

// CreatePortalSession opens the Stripe billing portal so an active
// subscriber can change or cancel their plan.
func (s *BillingService) CreatePortalSession(ctx context.Context, userID int) (string, error) {
	sub, err := s.Subscriptions.GetSubscriberByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if sub.StripeCustomerID == "" {
		return "", models.ErrNoActiveSubscription
	}

	callCtx, cancel := context.WithTimeout(ctx, stripeCallTimeout)
	defer cancel()

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(sub.StripeCustomerID),
		ReturnURL: stripe.String(s.ReturnURL),
	}
	params.Context = callCtx

	ps, err := portalsession.New(params)
	if err != nil {
		return "", err
	}
	return ps.URL, nil
}

// HandleWebhookEvent applies a verified Stripe event to the subscriber
// table. Upserts are keyed by customer email, so Stripe redeliveries are
// harmless.
func (s *BillingService) HandleWebhookEvent(ctx context.Context, eventType string, data json.RawMessage) error {
	switch eventType {
	case "customer.subscription.created", "customer.subscription.updated":
		return s.applySubscription(ctx, data, "")
	case "customer.subscription.deleted":
		return s.applySubscription(ctx, data, models.SubscriptionStatusCanceled)
	case "invoice.payment_failed":
		return s.applyPaymentFailure(ctx, data)
	default:
		// Unhandled event types are acknowledged so Stripe stops resending.
		return nil
	}
}

func (s *BillingService) applySubscription(ctx context.Context, data json.RawMessage, forcedStatus string) error {
	var stripeSub stripe.Subscription
	if err := json.Unmarshal(data, &stripeSub); err != nil {
		return fmt.Errorf("decode subscription event: %w", err)
	}
	if stripeSub.Customer == nil {
		return fmt.Errorf("subscription %s has no customer", stripeSub.ID)
	}

	email, err := s.resolveCustomerEmail(ctx, stripeSub.Customer.ID)
	if err != nil {
		return err
	}

	sub := models.Subscriber{
		Email:                email,
		StripeCustomerID:     stripeSub.Customer.ID,
		StripeSubscriptionID: stripeSub.ID,
		Status:               mapStripeStatus(stripeSub.Status),
	}
	if forcedStatus != "" {
		sub.Status = forcedStatus
	}
	if stripeSub.CurrentPeriodEnd > 0 {
		end := time.Unix(stripeSub.CurrentPeriodEnd, 0)
		sub.CurrentPeriodEnd = &end
	}
	if plan, ok := s.planForSubscription(ctx, &stripeSub); ok {
		sub.PlanCode = plan.Code
		sub.Tier = plan.Tier
	}

	if err := s.Subscriptions.UpsertSubscriberByEmail(ctx, sub); err != nil {
		return err
	}

	s.notify(ctx, email, "subscription_updated",
		fmt.Sprintf("Your subscription is now %s.", sub.Status))
	return nil
}

func (s *BillingService) applyPaymentFailure(ctx context.Context, data json.RawMessage) error {
	var invoice stripe.Invoice
	if err := json.Unmarshal(data, &invoice); err != nil {
		return fmt.Errorf("decode invoice event: %w", err)
	}
	email := invoice.CustomerEmail
	if email == "" && invoice.Customer != nil {
		var err error
		email, err = s.resolveCustomerEmail(ctx, invoice.Customer.ID)
		if err != nil {
			return err
		}
	}

	sub := models.Subscriber{
		Email:  email,
		Status: models.SubscriptionStatusPastDue,
	}
	if invoice.Customer != nil {
		sub.StripeCustomerID = invoice.Customer.ID
	}
	if err := s.Subscriptions.UpsertSubscriberByEmail(ctx, sub); err != nil {
		return err
	}

	s.notify(ctx, email, "payment_failed",
		"A subscription payment failed. Please update your payment method.")
	return nil
}

func (s *BillingService) resolveCustomerEmail(ctx context.Context, customerID string) (string, error) {
	if s.CustomerEmail != nil {
		return s.CustomerEmail(ctx, customerID)
	}

	callCtx, cancel := context.WithTimeout(ctx, stripeCallTimeout)
	defer cancel()

	params := &stripe.CustomerParams{}
	params.Context = callCtx
	cust, err := customer.Get(customerID, params)
	if err != nil {
		return "", err
	}
	return cust.Email, nil
}

// planForSubscription maps the subscription's Stripe price back to one of
// our plans. Unknown prices leave plan fields empty rather than failing the
// event.
func (s *BillingService) planForSubscription(ctx context.Context, stripeSub *stripe.Subscription) (models.SubscriptionPlan, bool) {
	if stripeSub.Items == nil || len(stripeSub.Items.Data) == 0 || stripeSub.Items.Data[0].Price == nil {
		return models.SubscriptionPlan{}, false
	}
	priceID := stripeSub.Items.Data[0].Price.ID

	plans, err := s.Subscriptions.GetPlans(ctx)
	if err != nil {
		if s.ErrorLog != nil {
			s.ErrorLog.Printf("plan lookup for price %s: %v", priceID, err)
		}
		return models.SubscriptionPlan{}, false
	}
	for _, p := range plans {
		if p.StripePriceID == priceID {
			return p, true
		}
	}
	return models.SubscriptionPlan{}, false
}

func (s *BillingService) notify(ctx context.Context, email, event, message string) {
	if s.Users == nil {
		return
	}
	user, err := s.Users.GetUserByEmail(ctx, email)
	if err != nil {
		return
	}
	if s.Notifier != nil {
		s.Notifier.NotifyUser(user.ID, event, map[string]interface{}{"message": message})
	}
	if s.Push != nil && user.FCMToken != nil && *user.FCMToken != "" {
		if err := s.Push.SendPush(ctx, *user.FCMToken, "Subscription", message); err != nil && s.ErrorLog != nil {
			s.ErrorLog.Printf("push to user %d: %v", user.ID, err)
		}
	}
}

func mapStripeStatus(status stripe.SubscriptionStatus) string {
	switch status {
	case stripe.SubscriptionStatusActive, stripe.SubscriptionStatusTrialing:
		return models.SubscriptionStatusActive
	case stripe.SubscriptionStatusPastDue, stripe.SubscriptionStatusUnpaid:
		return models.SubscriptionStatusPastDue
	default:
		return models.SubscriptionStatusCanceled
	}
}
