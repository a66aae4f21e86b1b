package commands

import (
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/guard"
)

var ErrCommitRetentionCommandIsNotConstructed = errors.New(
	"CommitRetentionCommand must be created via NewCommitRetentionCommand constructor",
)

// CommitRetentionCommand represents a request to place (or edit) a fiscal
// hold. The hold targets the whole shipment when documentID is nil, or one
// document otherwise. The reason is mandatory; the amount is free text and
// parsed leniently, never blocking the hold itself.
//
// Example:
//
//	cmd, err := NewCommitRetentionCommand(shipmentID, &documentID, RetentionInput{
//	    Reason: "missing customs clearance",
//	    Amount: "250,75",
//	})
type CommitRetentionCommand struct { //nolint:recvcheck //using for validation
	shipmentID   kernel.UUID
	documentID   *kernel.UUID
	fiscalAction shipment.FiscalAction

	guard guard.ConstructorGuard
}

// NewCommitRetentionCommand creates a command to commit a fiscal hold.
// A nil documentID targets the shipment itself.
func NewCommitRetentionCommand(
	shipmentID kernel.UUID,
	documentID *kernel.UUID,
	retention RetentionInput,
) (CommitRetentionCommand, error) {
	retainCommand := CommitRetentionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		retainCommand.setShipmentID(shipmentID),
		retainCommand.setDocumentID(documentID),
		retainCommand.setFiscalAction(retention),
	); err != nil {
		return CommitRetentionCommand{}, err
	}

	return retainCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CommitRetentionCommand) Validate() error {
	return c.guard.Validate(ErrCommitRetentionCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the owning shipment.
func (c CommitRetentionCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// DocumentID returns the targeted document, nil for a shipment-level hold.
func (c CommitRetentionCommand) DocumentID() *kernel.UUID {
	return c.documentID
}

// FiscalAction returns the validated hold record to commit.
func (c CommitRetentionCommand) FiscalAction() shipment.FiscalAction {
	return c.fiscalAction
}

func (c *CommitRetentionCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *CommitRetentionCommand) setDocumentID(documentID *kernel.UUID) error {
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

func (c *CommitRetentionCommand) setFiscalAction(retention RetentionInput) error {
	action, err := retention.toFiscalAction()
	if err != nil {
		return err
	}

	c.fiscalAction = action
	return nil
}
