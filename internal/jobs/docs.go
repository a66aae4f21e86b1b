// Package jobs provides scheduled background tasks for the workflow engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. SnapshotRefreshJob - Re-primes the read-side shipment snapshot with all
// active shipments on a configurable interval.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(shipmentRepo, shipmentSnapshot, refreshSpec, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The refresh spec uses the six-field cron format with a leading seconds
// field, e.g. "*/30 * * * * *" for every thirty seconds.
//
// # Error Handling
//
// A failed refresh is logged and retried on the next tick; the snapshot
// keeps serving its previous entries in the meantime.
package jobs
