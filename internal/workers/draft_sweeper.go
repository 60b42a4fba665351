package workers

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DraftStore is the part of the upload drafts the sweeper needs.
type DraftStore interface {
	Sweep(now time.Time) (int, error)
}

// DraftSweeper periodically drops upload drafts that were abandoned.
type DraftSweeper struct {
	Drafts      DraftStore
	TTL         time.Duration
	RunInterval time.Duration
}

func (w *DraftSweeper) Start(ctx context.Context) {
	RunPeriodically(ctx, "draft_sweeper", w.RunInterval, []Task{
		{Name: "expired_drafts", Fn: w.sweepExpiredDrafts},
	})
}

// sweepExpiredDrafts removes drafts untouched for longer than the TTL.
func (w *DraftSweeper) sweepExpiredDrafts(_ context.Context) (int, error) {
	removed, err := w.Drafts.Sweep(time.Now())
	if removed > 0 {
		zap.L().Debug("Removed expired upload drafts",
			zap.Int("count", removed),
			zap.Duration("ttl", w.TTL))
	}
	return removed, err
}
