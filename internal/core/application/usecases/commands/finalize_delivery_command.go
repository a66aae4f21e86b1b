package commands

import (
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/guard"
)

var ErrFinalizeDeliveryCommandIsNotConstructed = errors.New(
	"FinalizeDeliveryCommand must be created via NewFinalizeDeliveryCommand constructor",
)

// FinalizeDeliveryCommand represents a request to commit delivery of a
// shipment: either the whole shipment (empty document selection) or a chosen
// subset of its documents. Receiver details are mandatory.
//
// Example:
//
//	cmd, err := NewFinalizeDeliveryCommand(shipmentID, nil, DeliveryInput{
//	    ReceiverName: "Ana",
//	    DeliveryDate: "2026-03-01",
//	    DeliveryTime: "14:30",
//	})
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type FinalizeDeliveryCommand struct { //nolint:recvcheck //using for validation
	shipmentID  kernel.UUID
	documentIDs []kernel.UUID
	details     shipment.DeliveryDetails

	guard guard.ConstructorGuard
}

// NewFinalizeDeliveryCommand creates a command to finalize a delivery.
// An empty documentIDs selection means the whole shipment.
func NewFinalizeDeliveryCommand(
	shipmentID kernel.UUID,
	documentIDs []kernel.UUID,
	delivery DeliveryInput,
) (FinalizeDeliveryCommand, error) {
	finalizeCommand := FinalizeDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		finalizeCommand.setShipmentID(shipmentID),
		finalizeCommand.setDocumentIDs(documentIDs),
		finalizeCommand.setDetails(delivery),
	); err != nil {
		return FinalizeDeliveryCommand{}, err
	}

	return finalizeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c FinalizeDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeDeliveryCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to finalize.
func (c FinalizeDeliveryCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// DocumentIDs returns the selected documents, empty for the whole shipment.
func (c FinalizeDeliveryCommand) DocumentIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(c.documentIDs))
	copy(out, c.documentIDs)
	return out
}

// Details returns the captured receiver details.
func (c FinalizeDeliveryCommand) Details() shipment.DeliveryDetails {
	return c.details
}

func (c *FinalizeDeliveryCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *FinalizeDeliveryCommand) setDocumentIDs(documentIDs []kernel.UUID) error {
	for _, documentID := range documentIDs {
		if err := documentID.Validate(); err != nil {
			return err
		}
	}

	c.documentIDs = make([]kernel.UUID, len(documentIDs))
	copy(c.documentIDs, documentIDs)
	return nil
}

func (c *FinalizeDeliveryCommand) setDetails(delivery DeliveryInput) error {
	details, err := delivery.toDeliveryDetails()
	if err != nil {
		return err
	}

	c.details = details
	return nil
}
