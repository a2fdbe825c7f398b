package jobs

import (
	"context"
	"log/slog"

	"ups/internal/core/application/usecases/queries"
	"ups/internal/core/domain/model/kernel"
	"ups/internal/core/domain/model/truck"
	"ups/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultFleetReportSchedule runs the report every five seconds.
const DefaultFleetReportSchedule = "*/5 * * * * *"

// FleetCounter counts trucks by status.
type FleetCounter interface {
	Handle(ctx context.Context, query queries.CountTrucksByStatusQuery) (map[truck.Status]int, error)
}

// FleetReportJob periodically publishes the fleet utilisation of one world as a
// gauge and a log line.
type FleetReportJob struct {
	worldID  kernel.WorldID
	counter  FleetCounter
	metrics  *metrics.Metrics
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewFleetReportJob creates the job. An empty schedule uses DefaultFleetReportSchedule.
func NewFleetReportJob(
	worldID kernel.WorldID,
	counter FleetCounter,
	m *metrics.Metrics,
	schedule string,
	logger *slog.Logger,
) *FleetReportJob {
	if schedule == "" {
		schedule = DefaultFleetReportSchedule
	}

	return &FleetReportJob{
		worldID:  worldID,
		counter:  counter,
		metrics:  m,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "fleet_report_job"),
	}
}

// Start schedules the report.
func (j *FleetReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Fleet report job started", "schedule", j.schedule)
	return nil
}

// Run produces one report.
func (j *FleetReportJob) Run(ctx context.Context) {
	counts, err := j.counter.Handle(ctx, queries.NewCountTrucksByStatusQuery(j.worldID))
	if err != nil {
		j.logger.ErrorContext(ctx, "Fleet report job failed", "error", err)
		return
	}

	byName := make(map[string]int, len(counts))
	total := 0
	for status, n := range counts {
		byName[status.String()] += n
		total += n
	}
	j.metrics.SetTrucks(byName)

	j.logger.InfoContext(ctx, "Fleet report",
		"world_id", j.worldID,
		"total", total,
		"idle", counts[truck.Idle],
		"traveling", counts[truck.Traveling],
		"arrive_warehouse", counts[truck.ArriveWarehouse],
	)
}

// Stop stops the schedule and waits for a running report to finish.
func (j *FleetReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Fleet report job stopped")
}
