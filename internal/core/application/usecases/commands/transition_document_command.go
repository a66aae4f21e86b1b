package commands

import (
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"
	"freightops/internal/pkg/guard"
)

var (
	ErrTransitionDocumentCommandIsNotConstructed = errors.New(
		"TransitionDocumentCommand must be created via NewTransitionDocumentCommand constructor",
	)
	ErrRetentionInputIsRequired = errs.NewValueIsRequiredError("retention")
	ErrDeliveryInputIsRequired  = errs.NewValueIsRequiredError("delivery")
)

// TransitionDocumentCommand represents a request to move one document of a
// shipment to a target state. A transition to retained must carry the fiscal
// hold input, a transition to delivered must carry the receiver details.
// Any validation failure rejects the command before anything is loaded or
// mutated.
//
// Example:
//
//	cmd, err := NewTransitionDocumentCommand(shipmentID, documentID,
//	    shipment.DocumentDelivered, nil,
//	    &DeliveryInput{ReceiverName: "Ana", DeliveryDate: "2026-03-01", DeliveryTime: "14:30"})
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
type TransitionDocumentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	documentID kernel.UUID
	target     shipment.DocumentStatus

	// fiscalAction is set only for transitions to retained
	fiscalAction *shipment.FiscalAction
	// details is set only for transitions to delivered
	details *shipment.DeliveryDetails

	guard guard.ConstructorGuard
}

// NewTransitionDocumentCommand creates a command to transition a document.
// The retention input is required (and its reason must be non-empty) when
// the target is DocumentRetained; the delivery input is required and fully
// validated when the target is DocumentDelivered.
func NewTransitionDocumentCommand(
	shipmentID kernel.UUID,
	documentID kernel.UUID,
	target shipment.DocumentStatus,
	retention *RetentionInput,
	delivery *DeliveryInput,
) (TransitionDocumentCommand, error) {
	transitionCommand := TransitionDocumentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transitionCommand.setShipmentID(shipmentID),
		transitionCommand.setDocumentID(documentID),
		transitionCommand.setTarget(target),
	); err != nil {
		return TransitionDocumentCommand{}, err
	}

	if err := transitionCommand.setPayload(retention, delivery); err != nil {
		return TransitionDocumentCommand{}, err
	}

	return transitionCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionDocumentCommand) Validate() error {
	return c.guard.Validate(ErrTransitionDocumentCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the owning shipment.
func (c TransitionDocumentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// DocumentID returns the identifier of the document to transition.
func (c TransitionDocumentCommand) DocumentID() kernel.UUID {
	return c.documentID
}

// Target returns the requested document state.
func (c TransitionDocumentCommand) Target() shipment.DocumentStatus {
	return c.target
}

// FiscalAction returns the hold record for retained transitions, nil otherwise.
func (c TransitionDocumentCommand) FiscalAction() *shipment.FiscalAction {
	return c.fiscalAction
}

// Details returns the receiver details for delivered transitions, nil otherwise.
func (c TransitionDocumentCommand) Details() *shipment.DeliveryDetails {
	return c.details
}

func (c *TransitionDocumentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *TransitionDocumentCommand) setDocumentID(documentID kernel.UUID) error {
	if err := documentID.Validate(); err != nil {
		return err
	}

	c.documentID = documentID
	return nil
}

func (c *TransitionDocumentCommand) setTarget(target shipment.DocumentStatus) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *TransitionDocumentCommand) setPayload(retention *RetentionInput, delivery *DeliveryInput) error {
	switch c.target {
	case shipment.DocumentRetained:
		if retention == nil {
			return ErrRetentionInputIsRequired
		}
		action, err := retention.toFiscalAction()
		if err != nil {
			return err
		}
		c.fiscalAction = &action
	case shipment.DocumentDelivered:
		if delivery == nil {
			return ErrDeliveryInputIsRequired
		}
		details, err := delivery.toDeliveryDetails()
		if err != nil {
			return err
		}
		c.details = &details
	}
	return nil
}
