package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweep deletes sessions idle for longer than ttl every interval until ctx is done.
func Sweep(ctx context.Context, repo Repository, ttl, interval time.Duration, logger *zap.SugaredLogger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := repo.DeleteStale(ctx, now.Add(-ttl))
			if err != nil {
				logger.Warnw("session sweep failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Infow("stale sessions removed", "count", n)
			}
		}
	}
}
