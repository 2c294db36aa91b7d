package main

import (
	"context"
	"time"
)

const stalePushTokenAge = 90 * 24 * time.Hour

// pruneStalePushTokensDaily drops push tokens that have not been refreshed
// in 90 days. Runs once at startup and then every 24h.
func (app *application) pruneStalePushTokensDaily() {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		prune := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := app.store.PushTokens.PruneStaleTokens(ctx, stalePushTokenAge); err != nil {
				app.logger.Errorf("Error pruning stale push tokens: %v", err)
			} else {
				app.logger.Infof("Pruned stale push tokens at %s", time.Now().Format(time.RFC1123))
			}
		}

		prune()
		for range ticker.C {
			prune()
		}
	}()
}
