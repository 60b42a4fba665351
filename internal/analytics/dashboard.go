package analytics

import (
	"context"
	"sync"

	"kycadmin/internal/models"
	"kycadmin/internal/notifier"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const MessageFetchFailed = "Failed to fetch analytics"

type snapshotAggregator interface {
	Aggregate(ctx context.Context) (models.AnalyticsSnapshot, error)
}

// Dashboard holds the analytics section state: the last good snapshot
// (zeroed until the first success) and whether a refresh is in flight.
type Dashboard struct {
	aggregator snapshotAggregator

	mu       sync.RWMutex
	snapshot models.AnalyticsSnapshot
	loading  bool

	group singleflight.Group
}

func NewDashboard(aggregator snapshotAggregator) *Dashboard {
	return &Dashboard{aggregator: aggregator}
}

// State returns the displayed snapshot and the in-flight flag.
func (d *Dashboard) State() (models.AnalyticsSnapshot, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot, d.loading
}

// Refresh re-runs the whole aggregation. Concurrent callers share one run.
// On failure the previous snapshot stays and notify receives one error.
// The run is detached from ctx cancellation; an abandoned request does not
// abort it.
func (d *Dashboard) Refresh(ctx context.Context, notify notifier.INotifier) models.AnalyticsSnapshot {
	runCtx := context.WithoutCancel(ctx)

	result, err, _ := d.group.Do("refresh", func() (any, error) {
		d.setLoading(true)
		defer d.setLoading(false)

		snapshot, err := d.aggregator.Aggregate(runCtx)
		if err != nil {
			return nil, err
		}

		d.mu.Lock()
		d.snapshot = snapshot
		d.mu.Unlock()
		return snapshot, nil
	})
	if err != nil {
		zap.L().Error("Analytics refresh failed", zap.Error(err))
		notifier.Error(notify, MessageFetchFailed)
		snapshot, _ := d.State()
		return snapshot
	}

	return result.(models.AnalyticsSnapshot)
}

func (d *Dashboard) setLoading(loading bool) {
	d.mu.Lock()
	d.loading = loading
	d.mu.Unlock()
}
