package commands

import (
	"context"
	"errors"
	"time"

	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/core/domain/services"
	"freightops/internal/core/ports"
)

// FinalizeDeliveryResult reports what a finalize operation did: the
// authoritative post-write shipment and how many delivery ledger records
// the cascade created.
type FinalizeDeliveryResult struct {
	Shipment       *shipment.Shipment
	RecordsCreated int
}

// FinalizeDeliveryCommandHandler commits the delivery of a shipment or a
// subset of its documents and cascades delivery ledger records.
//
// Ledger writes are per-record and run outside the shipment transaction:
// the ledger offers no multi-record write primitive. When a mid-cascade
// write fails the handler still persists the documents that were delivered,
// commits, and returns the result together with a *PartialCascadeError
// naming how many records were created and which documents remain. A
// follow-up finalize for the same selection picks up where it stopped.
type FinalizeDeliveryCommandHandler struct {
	uowFactory ShipmentUoWFactory
	recordRepo ports.DeliveryRecordRepository
	cascade    services.DeliveryCascade
	now        func() time.Time
}

// NewFinalizeDeliveryCommandHandler creates a handler for delivery
// finalization.
func NewFinalizeDeliveryCommandHandler(
	uowFactory ShipmentUoWFactory,
	recordRepo ports.DeliveryRecordRepository,
) FinalizeDeliveryCommandHandler {
	return FinalizeDeliveryCommandHandler{
		uowFactory: uowFactory,
		recordRepo: recordRepo,
		cascade:    services.NewDeliveryCascade(),
		now:        time.Now,
	}
}

// Handle processes the finalize command. On a partial cascade the returned
// result is still valid and reflects the persisted progress.
func (h *FinalizeDeliveryCommandHandler) Handle(
	ctx context.Context, cmd FinalizeDeliveryCommand,
) (FinalizeDeliveryResult, error) {
	if err := cmd.Validate(); err != nil {
		return FinalizeDeliveryResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return FinalizeDeliveryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	trackedShipment, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return FinalizeDeliveryResult{}, err
	}

	selected, err := h.selectDocuments(trackedShipment, cmd)
	if err != nil {
		return FinalizeDeliveryResult{}, err
	}

	recordsCreated, cascadeErr := finalizeShipment(ctx, h.cascade, h.recordRepo,
		trackedShipment, selected, cmd.Details(), h.now())
	if cascadeErr != nil && !errors.Is(cascadeErr, ErrPartialCascade) {
		return FinalizeDeliveryResult{}, cascadeErr
	}

	if err = shipmentRepo.Update(ctx, trackedShipment); err != nil {
		return FinalizeDeliveryResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return FinalizeDeliveryResult{}, err
	}

	return FinalizeDeliveryResult{
		Shipment:       trackedShipment,
		RecordsCreated: recordsCreated,
	}, cascadeErr
}

func (h *FinalizeDeliveryCommandHandler) selectDocuments(
	trackedShipment *shipment.Shipment, cmd FinalizeDeliveryCommand,
) ([]*shipment.Document, error) {
	documentIDs := cmd.DocumentIDs()
	if len(documentIDs) == 0 {
		return nil, nil
	}

	selected := make([]*shipment.Document, 0, len(documentIDs))
	for _, documentID := range documentIDs {
		document, err := trackedShipment.Document(documentID)
		if err != nil {
			return nil, err
		}
		selected = append(selected, document)
	}
	return selected, nil
}
