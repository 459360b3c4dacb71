package models

import "time"

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
)

type SubscriptionPlan struct {
	ID            int    `json:"id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	StripePriceID string `json:"stripe_price_id"`
	MonthlyAmount int    `json:"monthly_amount"`
	Tier          string `json:"tier"`
}

// TierLimits are the per-tier numeric entitlements. A nil value denotes
// "unlimited".
type TierLimits struct {
	Tier             string `json:"tier"`
	VisibleProviders *int   `json:"visible_providers"`
	ProviderServices *int   `json:"provider_services"`
}

// Subscriber is the billing-side record kept in sync by webhook events,
// keyed by the customer email Stripe reports.
type Subscriber struct {
	ID                   int        `json:"id"`
	UserID               int        `json:"user_id"`
	Email                string     `json:"email"`
	StripeCustomerID     string     `json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID string     `json:"stripe_subscription_id,omitempty"`
	PlanCode             string     `json:"plan_code"`
	Tier                 string     `json:"tier"`
	Status               string     `json:"status"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            *time.Time `json:"updated_at,omitempty"`
}
