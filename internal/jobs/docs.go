// Package jobs provides scheduled background tasks for the pizzeria service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with
// seconds). A tick that fires while the previous run is still busy is skipped.
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes committed domain events from the outbox to Kafka
// 2. StatisticsRefreshJob - recomputes order statistics for the Prometheus gauges
//
// # Usage
//
//	relay, err := jobs.NewOutboxRelayJob(relayHandler, metrics, "*/5 * * * * *", 100, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	manager := jobs.NewJobManager().Register("outbox relay", relay)
//	if err := manager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer manager.StopAll()
//
// # Error Handling
//
// - Relay failures are logged and counted; the batch stays pending for the next run
// - Statistics refresh retries persistence failures with exponential backoff
// - Failed job starts stop any already running jobs
package jobs
