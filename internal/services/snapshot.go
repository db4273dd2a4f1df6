package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SnapshotWorker periodically recomputes the global leaderboard so the
// cache stays warm even between organic requests.
type SnapshotWorker struct {
	leaderboard *LeaderboardService
	logger      *zap.SugaredLogger
}

// NewSnapshotWorker creates a new background snapshot worker
func NewSnapshotWorker(lb *LeaderboardService, logger *zap.SugaredLogger) *SnapshotWorker {
	return &SnapshotWorker{leaderboard: lb, logger: logger}
}

// Start begins the periodic refresh loop
func (w *SnapshotWorker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Initial refresh
	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Snapshot worker stopped")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *SnapshotWorker) refresh(ctx context.Context) {
	size, err := w.leaderboard.RefreshGlobal(ctx)
	if err != nil {
		w.logger.Warnw("Global leaderboard refresh failed", "error", err)
		return
	}
	w.logger.Infow("Global leaderboard refreshed", "entries", size)
}
