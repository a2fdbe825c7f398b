package jobs

import (
	"fmt"
	"log/slog"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/pkg/metrics"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	fleetReportJob *FleetReportJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	worldID kernel.WorldID,
	fleetCounter FleetCounter,
	m *metrics.Metrics,
	fleetReportSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		fleetReportJob: NewFleetReportJob(worldID, fleetCounter, m, fleetReportSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.fleetReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start fleet report job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.fleetReportJob.Stop()
}
