// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Runs every second to drain committed outbox rows to
// the message broker.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(outboxRepository, producer, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Delivery semantics
//
// The relay marks a row published only after the broker accepted it. A
// tick that fails mid-way re-sends the unmarked rows on the next run, so
// external delivery is at-least-once and consumers dedupe on message id.
package jobs
