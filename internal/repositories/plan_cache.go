package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"servioBack/internal/models"
)

const planCacheKey = "subscription:plans"

// PlanCache is a TTL cache in front of the plan table so the pricing screen
// stays up when the store is slow or briefly unreachable.
type PlanCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func (c *PlanCache) Get(ctx context.Context) ([]models.SubscriptionPlan, bool) {
	if c == nil || c.Redis == nil {
		return nil, false
	}
	data, err := c.Redis.Get(ctx, planCacheKey).Bytes()
	if err != nil {
		// Cache miss or cache failure both fall through to the store.
		return nil, false
	}
	var plans []models.SubscriptionPlan
	if err := json.Unmarshal(data, &plans); err != nil {
		return nil, false
	}
	return plans, true
}

func (c *PlanCache) Set(ctx context.Context, plans []models.SubscriptionPlan) {
	if c == nil || c.Redis == nil {
		return
	}
	data, err := json.Marshal(plans)
	if err != nil {
		return
	}
	ttl := c.TTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	c.Redis.Set(ctx, planCacheKey, data, ttl)
}
