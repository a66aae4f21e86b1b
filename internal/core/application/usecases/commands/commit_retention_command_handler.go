package commands

import (
	"context"

	"freightops/internal/core/domain/model/shipment"
)

// CommitRetentionCommandHandler places a fiscal hold on a shipment or on one
// of its documents. The hold record and the status flip are applied to the
// aggregate together and written in one transaction, so a persistence
// failure can never leave the status advanced without its fiscal record.
//
// Committing a hold on an already retained target replaces the existing
// record, which is how a hold is edited.
type CommitRetentionCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewCommitRetentionCommandHandler creates a handler for retention commits.
func NewCommitRetentionCommandHandler(uowFactory ShipmentUoWFactory) CommitRetentionCommandHandler {
	return CommitRetentionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the retention commit and returns the authoritative
// post-write shipment.
func (h *CommitRetentionCommandHandler) Handle(
	ctx context.Context, cmd CommitRetentionCommand,
) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	trackedShipment, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	if documentID := cmd.DocumentID(); documentID != nil {
		err = trackedShipment.RetainDocument(*documentID, cmd.FiscalAction())
	} else {
		err = trackedShipment.Retain(cmd.FiscalAction())
	}
	if err != nil {
		return nil, err
	}

	if err = shipmentRepo.Update(ctx, trackedShipment); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return trackedShipment, nil
}
