package commands

import (
	"context"

	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/core/domain/services"
	"freightops/internal/core/ports"
)

// TransitionDocumentCommandHandler moves one document of a shipment to its
// requested state and re-derives the shipment status from the documents.
//
// A transition to delivered runs the per-document cascade: the document's
// delivery ledger record is written first (outside the shipment
// transaction), then the document is flipped and the shipment re-derived.
//
// Example:
//
//	handler := NewTransitionDocumentCommandHandler(uowFactory, recordRepo)
//	updated, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Shipment is now %s", updated.Status())
type TransitionDocumentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	recordRepo ports.DeliveryRecordRepository
	cascade    services.DeliveryCascade
}

// NewTransitionDocumentCommandHandler creates a handler for document
// transitions. The record repository is used for ledger writes only.
func NewTransitionDocumentCommandHandler(
	uowFactory ShipmentUoWFactory,
	recordRepo ports.DeliveryRecordRepository,
) TransitionDocumentCommandHandler {
	return TransitionDocumentCommandHandler{
		uowFactory: uowFactory,
		recordRepo: recordRepo,
		cascade:    services.NewDeliveryCascade(),
	}
}

// Handle processes the document transition and returns the authoritative
// post-write shipment. An invalid transition leaves both the document and
// the shipment untouched.
func (h *TransitionDocumentCommandHandler) Handle(
	ctx context.Context, cmd TransitionDocumentCommand,
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

	if err = h.applyTransition(ctx, trackedShipment, cmd); err != nil {
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

func (h *TransitionDocumentCommandHandler) applyTransition(
	ctx context.Context, trackedShipment *shipment.Shipment, cmd TransitionDocumentCommand,
) error {
	switch cmd.Target() {
	case shipment.DocumentRetained:
		return trackedShipment.RetainDocument(cmd.DocumentID(), *cmd.FiscalAction())
	case shipment.Pending:
		return trackedShipment.ReleaseDocumentRetention(cmd.DocumentID())
	case shipment.PickedUp:
		return trackedShipment.PickUpDocument(cmd.DocumentID())
	case shipment.DocumentDelivered:
		return h.deliverDocument(ctx, trackedShipment, cmd)
	default:
		return shipment.DocumentStatusUnknown.Validate()
	}
}

func (h *TransitionDocumentCommandHandler) deliverDocument(
	ctx context.Context, trackedShipment *shipment.Shipment, cmd TransitionDocumentCommand,
) error {
	document, err := trackedShipment.Document(cmd.DocumentID())
	if err != nil {
		return err
	}

	details := *cmd.Details()
	if _, cascadeErr := deliverSelectedDocuments(ctx, h.cascade, h.recordRepo,
		trackedShipment, []*shipment.Document{document}, details); cascadeErr != nil {
		return cascadeErr
	}

	// receiver info on the shipment once every document reached its receiver
	if trackedShipment.Status() == shipment.DeliveredFinal {
		return trackedShipment.CaptureDeliveryDetails(details)
	}
	return nil
}
