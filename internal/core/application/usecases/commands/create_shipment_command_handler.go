package commands

import (
	"context"

	"freightops/internal/core/domain/model/shipment"
)

// CreateShipmentCommandHandler handles the business logic for shipment
// registration. Creates the shipment in transit with its documents pending.
//
// Example:
//
//	handler := NewCreateShipmentCommandHandler(uowFactory)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("shipment registration failed: %w", err)
//	}
//	fmt.Printf("Shipment %s is now tracked", created.TrackingNumber())
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewCreateShipmentCommandHandler creates a handler for shipment registration.
func NewCreateShipmentCommandHandler(uowFactory ShipmentUoWFactory) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the shipment registration command and returns the
// persisted aggregate so callers see the authoritative state without a
// follow-up read.
func (h *CreateShipmentCommandHandler) Handle(
	ctx context.Context, cmd CreateShipmentCommand,
) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	newShipment, err := shipment.NewShipment(
		cmd.ShipmentID(),
		cmd.ClientID(),
		cmd.TrackingNumber(),
		cmd.CarrierName(),
		cmd.TransportMode(),
		cmd.Packages(),
		cmd.Weight(),
	)
	if err != nil {
		return nil, err
	}

	if arrivalDate := cmd.ArrivalDate(); arrivalDate != nil {
		newShipment.SetArrivalInfo(*arrivalDate, cmd.ArrivalFlight())
	}

	for _, document := range cmd.Documents() {
		if _, err = newShipment.AddDocument(
			document.Name,
			document.MinuteNumber,
			document.InvoiceNumbers,
			document.Packages,
			document.Weight,
			document.Notes,
			document.Priority,
		); err != nil {
			return nil, err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().Add(ctx, newShipment); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newShipment, nil
}
