package main

import (
	"context"
	"log"
	"time"

	"servioBack/internal/services"
)

const subscriptionCleanerTimeout = 1 * time.Minute

// startSubscriptionCleaner downgrades subscribers whose paid period lapsed
// without a renewal webhook, once a day.
func startSubscriptionCleaner(ctx context.Context, svc *services.SubscriptionService, infoLog, errorLog *log.Logger) {
	if svc == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, subscriptionCleanerTimeout)
			expired, err := svc.ExpireLapsed(runCtx, time.Now().UTC())
			cancel()
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("subscription cleaner: failed to expire lapsed subscriptions: %v", err)
				}
			} else if expired > 0 && infoLog != nil {
				infoLog.Printf("subscription cleaner: expired %d lapsed subscriptions", expired)
			}
		}

		runOnce()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}
