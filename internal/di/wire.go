// Package di provides dependency injection wiring and initialization.
package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/stockfolio/internal/config"
)

// Wire initializes all dependencies and returns a fully configured container
// Order of operations:
// 1. Load holdings
// 2. Initialize clients
// 3. Initialize services
// 4. Register jobs
func Wire(cfg *config.Config, log zerolog.Logger) (*Container, *JobInstances, error) {
	container := &Container{}

	// Step 1: Load holdings
	if err := InitializeHoldings(container, cfg, log); err != nil {
		return nil, nil, fmt.Errorf("failed to load holdings: %w", err)
	}

	// Step 2: Initialize clients
	if err := InitializeClients(container, cfg, log); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize clients: %w", err)
	}

	// Step 3: Initialize services
	InitializeServices(container, cfg, log)

	// Step 4: Register jobs
	jobs, err := RegisterJobs(container, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to register jobs: %w", err)
	}

	log.Info().Msg("Dependency injection wiring completed successfully")

	return container, jobs, nil
}
