// Package jobs provides scheduled background tasks for the back office.
//
// Jobs are built on github.com/robfig/cron/v3 and managed through JobManager:
//
//	jobManager := jobs.NewJobManager(lowStockJob)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// LowStockAlertJob periodically lists inventory records at or below a
// threshold, logs one warning per record and publishes the count as a gauge.
//
// Runs never overlap: a tick that fires while the previous run is still
// going is skipped.
package jobs
