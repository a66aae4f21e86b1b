package commands

import (
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/guard"
)

var ErrClearRetentionCommandIsNotConstructed = errors.New(
	"ClearRetentionCommand must be created via NewClearRetentionCommand constructor",
)

// ClearRetentionCommand represents a request to lift a fiscal hold from a
// shipment (documentID nil) or from one of its documents. The hold record is
// deleted and the owner returns to its transportable state.
type ClearRetentionCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	documentID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewClearRetentionCommand creates a command to clear a fiscal hold.
// A nil documentID targets the shipment itself.
func NewClearRetentionCommand(shipmentID kernel.UUID, documentID *kernel.UUID) (ClearRetentionCommand, error) {
	clearCommand := ClearRetentionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		clearCommand.setShipmentID(shipmentID),
		clearCommand.setDocumentID(documentID),
	); err != nil {
		return ClearRetentionCommand{}, err
	}

	return clearCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ClearRetentionCommand) Validate() error {
	return c.guard.Validate(ErrClearRetentionCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the owning shipment.
func (c ClearRetentionCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// DocumentID returns the targeted document, nil for a shipment-level hold.
func (c ClearRetentionCommand) DocumentID() *kernel.UUID {
	return c.documentID
}

func (c *ClearRetentionCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *ClearRetentionCommand) setDocumentID(documentID *kernel.UUID) error {
	if documentID == nil {
		return nil
	}
	if err := documentID.Validate(); err != nil {
		return err
	}

	idCopy := *documentID
	c.documentID = &idCopy
	return nil
}
