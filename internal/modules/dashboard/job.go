package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RefreshJobName is the scheduler name of the refresh job
const RefreshJobName = "dashboard_refresh"

// RefreshJob runs Dashboard.Refresh on a schedule. Overlapping runs are skipped.
type RefreshJob struct {
	dashboard *Dashboard
	timeout   time.Duration
	running   sync.Mutex
}

// NewRefreshJob creates a refresh job. A zero timeout means no deadline.
func NewRefreshJob(d *Dashboard, timeout time.Duration) *RefreshJob {
	return &RefreshJob{dashboard: d, timeout: timeout}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return RefreshJobName
}

// Run executes one refresh. It fails only when both fetches failed.
func (j *RefreshJob) Run() error {
	if !j.running.TryLock() {
		j.dashboard.log.Warn().Msg("Dashboard refresh already running, skipping")
		return nil
	}
	defer j.running.Unlock()

	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	result := j.dashboard.Refresh(ctx)
	if result.Failed() {
		return fmt.Errorf("refresh %s failed: quotes: %s; history: %s", result.ID, result.Quotes.Error, result.History.Error)
	}
	return nil
}
