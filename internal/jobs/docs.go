// Package jobs provides scheduled background tasks for the order lifecycle
// engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OrderStatsJob - Runs every 30 seconds to refresh the orders_by_status gauge
//
// # Usage
//
//	job := jobs.NewOrderStatsJob(statusCountsHandler, logger)
//	if err := job.Start(); err != nil {
//		log.Fatal("Failed to start order stats job:", err)
//	}
//	defer job.Stop()
//
// # Error Handling
//
// A failed refresh is logged and skipped; the gauge keeps its previous
// values until the next successful run.
package jobs
