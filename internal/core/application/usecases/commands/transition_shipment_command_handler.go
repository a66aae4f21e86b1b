package commands

import (
	"context"
	"errors"
	"time"

	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/core/domain/services"
	"freightops/internal/core/ports"
)

// TransitionShipmentCommandHandler moves a whole shipment to its requested
// state. DeliveredFinal runs the delivery cascade: the single shipment
// record for document-less shipments, or one record per document otherwise.
//
// Example:
//
//	handler := NewTransitionShipmentCommandHandler(uowFactory, recordRepo)
//	updated, err := handler.Handle(ctx, cmd)
//	if err != nil && !errors.Is(err, commands.ErrPartialCascade) {
//	    return err
//	}
type TransitionShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	recordRepo ports.DeliveryRecordRepository
	cascade    services.DeliveryCascade
	now        func() time.Time
}

// NewTransitionShipmentCommandHandler creates a handler for shipment
// transitions.
func NewTransitionShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	recordRepo ports.DeliveryRecordRepository,
) TransitionShipmentCommandHandler {
	return TransitionShipmentCommandHandler{
		uowFactory: uowFactory,
		recordRepo: recordRepo,
		cascade:    services.NewDeliveryCascade(),
		now:        time.Now,
	}
}

// Handle processes the shipment transition and returns the authoritative
// post-write shipment. A cascade that stopped early still persists the
// progress it made and reports it via *PartialCascadeError alongside the
// updated shipment.
func (h *TransitionShipmentCommandHandler) Handle(
	ctx context.Context, cmd TransitionShipmentCommand,
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

	transitionErr := h.applyTransition(ctx, trackedShipment, cmd)
	if transitionErr != nil && !errors.Is(transitionErr, ErrPartialCascade) {
		return nil, transitionErr
	}

	if err = shipmentRepo.Update(ctx, trackedShipment); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return trackedShipment, transitionErr
}

func (h *TransitionShipmentCommandHandler) applyTransition(
	ctx context.Context, trackedShipment *shipment.Shipment, cmd TransitionShipmentCommand,
) error {
	switch cmd.Target() {
	case shipment.Retained:
		return trackedShipment.Retain(*cmd.FiscalAction())
	case shipment.InTransit:
		return trackedShipment.ReleaseRetention()
	case shipment.Delivered:
		// manual pick-up exists for document-less shipments only; shipments
		// with tracked documents reach delivery states through derivation
		if trackedShipment.HasDocuments() {
			return ErrTargetIsNotRequestable
		}
		return trackedShipment.PickUp()
	case shipment.DeliveredFinal:
		_, err := finalizeShipment(ctx, h.cascade, h.recordRepo,
			trackedShipment, nil, *cmd.Details(), h.now())
		return err
	default:
		return ErrTargetIsNotRequestable
	}
}
