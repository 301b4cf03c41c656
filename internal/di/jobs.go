package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/stockfolio/internal/config"
	"github.com/aristath/stockfolio/internal/modules/dashboard"
	"github.com/aristath/stockfolio/internal/scheduler"
)

// RegisterJobs creates the scheduler and registers the periodic refresh job.
// The scheduler is not started here.
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) (*JobInstances, error) {
	if container == nil || container.Dashboard == nil {
		return nil, fmt.Errorf("container cannot be nil")
	}

	container.Scheduler = scheduler.New(log)

	// Quotes and history are fetched in parallel, each bounded by the provider timeout
	refresh := dashboard.NewRefreshJob(container.Dashboard, 2*cfg.ProviderTimeout)
	if err := container.Scheduler.AddJob(cfg.RefreshSchedule, refresh); err != nil {
		return nil, err
	}

	return &JobInstances{Refresh: refresh}, nil
}
