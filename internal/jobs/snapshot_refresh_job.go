package jobs

import (
	"context"
	"log/slog"

	"freightops/internal/core/application/snapshot"
	"freightops/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// SnapshotRefreshJob periodically re-primes the shipment snapshot with every
// active shipment. Mutating handlers keep the snapshot fresh write by write;
// this job resets it wholesale so entries evicted or expired between writes
// come back without waiting for the next mutation.
type SnapshotRefreshJob struct {
	shipments        ports.ShipmentRepository
	shipmentSnapshot *snapshot.ShipmentSnapshot
	spec             string
	cron             *cron.Cron
	logger           *slog.Logger
}

// NewSnapshotRefreshJob creates a job that refreshes the shipment snapshot
// on the given cron spec (with seconds field).
func NewSnapshotRefreshJob(
	shipments ports.ShipmentRepository,
	shipmentSnapshot *snapshot.ShipmentSnapshot,
	spec string,
	logger *slog.Logger,
) *SnapshotRefreshJob {
	return &SnapshotRefreshJob{
		shipments:        shipments,
		shipmentSnapshot: shipmentSnapshot,
		spec:             spec,
		cron:             cron.New(cron.WithSeconds()),
		logger:           logger.With("component", "snapshot_refresh_job"),
	}
}

// Start schedules the refresh.
func (j *SnapshotRefreshJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()

		active, err := j.shipments.GetAllActive(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Snapshot refresh job failed", "error", err)
			return
		}

		j.shipmentSnapshot.PrimeAll(active)
		j.logger.DebugContext(ctx, "Shipment snapshot refreshed", "shipments", len(active))
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Snapshot refresh job started", "spec", j.spec)
	return nil
}

// Stop stops the refresh job.
func (j *SnapshotRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Snapshot refresh job stopped")
}
