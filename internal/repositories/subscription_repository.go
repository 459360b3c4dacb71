package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"servioBack/internal/models"
)

type SubscriptionRepository struct {
	DB *sql.DB
}

func (r *SubscriptionRepository) GetPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, code, name, stripe_price_id, monthly_amount, tier
		FROM subscription_plans ORDER BY monthly_amount`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []models.SubscriptionPlan
	for rows.Next() {
		var p models.SubscriptionPlan
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.StripePriceID, &p.MonthlyAmount, &p.Tier); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (r *SubscriptionRepository) GetPlanByCode(ctx context.Context, code string) (models.SubscriptionPlan, error) {
	var p models.SubscriptionPlan
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, code, name, stripe_price_id, monthly_amount, tier
		FROM subscription_plans WHERE code = ?`, code).
		Scan(&p.ID, &p.Code, &p.Name, &p.StripePriceID, &p.MonthlyAmount, &p.Tier)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SubscriptionPlan{}, models.ErrPlanNotFound
	}
	if err != nil {
		return models.SubscriptionPlan{}, err
	}
	return p, nil
}

// UpsertSubscriberByEmail keeps billing state in sync with webhook events.
// Keyed by customer email so replayed events are idempotent.
func (r *SubscriptionRepository) UpsertSubscriberByEmail(ctx context.Context, sub models.Subscriber) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO subscribers
			(email, user_id, stripe_customer_id, stripe_subscription_id,
			 plan_code, tier, status, current_period_end, created_at)
		VALUES (?, (SELECT id FROM users WHERE email = ?), ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			stripe_customer_id = VALUES(stripe_customer_id),
			stripe_subscription_id = VALUES(stripe_subscription_id),
			plan_code = VALUES(plan_code),
			tier = VALUES(tier),
			status = VALUES(status),
			current_period_end = VALUES(current_period_end),
			updated_at = ?`,
		sub.Email, sub.Email, sub.StripeCustomerID, sub.StripeSubscriptionID,
		sub.PlanCode, sub.Tier, sub.Status, sub.CurrentPeriodEnd, time.Now(), time.Now())
	return err
}

func (r *SubscriptionRepository) GetSubscriberByUserID(ctx context.Context, userID int) (models.Subscriber, error) {
	var s models.Subscriber
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, email, stripe_customer_id, stripe_subscription_id,
		       plan_code, tier, status, current_period_end, created_at
		FROM subscribers WHERE user_id = ?`, userID).
		Scan(&s.ID, &s.UserID, &s.Email, &s.StripeCustomerID, &s.StripeSubscriptionID,
			&s.PlanCode, &s.Tier, &s.Status, &s.CurrentPeriodEnd, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Subscriber{}, nil
	}
	if err != nil {
		return models.Subscriber{}, err
	}
	return s, nil
}

// GetTierLimits reads the numeric entitlements for a tier. NULL columns scan
// to nil and mean "unlimited".
func (r *SubscriptionRepository) GetTierLimits(ctx context.Context, tier string) (models.TierLimits, error) {
	limits := models.TierLimits{Tier: tier}
	var visible, services sql.NullInt64
	err := r.DB.QueryRowContext(ctx, `
		SELECT visible_providers, provider_services
		FROM tier_limits WHERE tier = ?`, tier).Scan(&visible, &services)
	if errors.Is(err, sql.ErrNoRows) {
		return limits, nil
	}
	if err != nil {
		return models.TierLimits{}, err
	}
	if visible.Valid {
		v := int(visible.Int64)
		limits.VisibleProviders = &v
	}
	if services.Valid {
		v := int(services.Int64)
		limits.ProviderServices = &v
	}
	return limits, nil
}

// ExpireLapsed downgrades subscribers whose paid period ended before now.
// Called by the daily cleaner.
func (r *SubscriptionRepository) ExpireLapsed(ctx context.Context, now time.Time) (int, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE subscribers SET status = ?, updated_at = ?
		WHERE status = ? AND current_period_end IS NOT NULL AND current_period_end < ?`,
		models.SubscriptionStatusCanceled, now, models.SubscriptionStatusActive, now)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
