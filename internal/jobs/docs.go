// Package jobs provides scheduled background tasks for the delivery
// platform.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping the request path cannot do.
//
// # Available Jobs
//
// 1. StalePendingJob - Runs hourly to cancel Pending deliveries that sat
// unclaimed in the open pool past the staleness threshold
// 2. PaymentReminderJob - Runs hourly to re-publish refresh events for
// delivered deliveries whose fee has gone unpaid for too long
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager, err := jobs.NewJobManager(
//		expireStaleHandler, unpaidHandler, publisher, 24, 24, logger)
//	if err != nil {
//		log.Fatal("Failed to create jobs:", err)
//	}
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The stale sweep fires at the top of every hour and the payment reminder
// at half past, so the two never run back to back against the same rows.
//
// # Error Handling
//
//   - The sweep skips deliveries that moved out of Pending between the read
//     and the cancel; only unexpected failures are logged as errors
//   - Reminder publish failures are logged and skipped; the next run
//     retries naturally
//   - Failed job starts will stop any already running jobs
package jobs
