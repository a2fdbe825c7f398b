// Package jobs provides scheduled background tasks for the dispatch coordinator.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds precision) and are
// managed through JobManager:
//
//	jobManager := jobs.NewJobManager(worldID, countTrucksHandler, m, jobs.DefaultFleetReportSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// FleetReportJob counts trucks by status, publishes the counts on the ups_trucks
// gauge and logs a utilisation line. A failed count is logged and the previous
// gauge values are kept.
package jobs
