package commands

import (
	"context"

	"freightops/internal/core/domain/model/shipment"
)

// ClearRetentionCommandHandler lifts a fiscal hold. The hold record is
// removed and the status reverted in the same aggregate write. Clearing a
// target that is not retained is a no-op, matching the commit side's
// re-request semantics.
type ClearRetentionCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewClearRetentionCommandHandler creates a handler for retention clears.
func NewClearRetentionCommandHandler(uowFactory ShipmentUoWFactory) ClearRetentionCommandHandler {
	return ClearRetentionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the retention clear and returns the authoritative
// post-write shipment.
func (h *ClearRetentionCommandHandler) Handle(
	ctx context.Context, cmd ClearRetentionCommand,
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
		err = trackedShipment.ReleaseDocumentRetention(*documentID)
	} else {
		err = trackedShipment.ReleaseRetention()
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
