package commands

import (
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"
	"freightops/internal/pkg/guard"
)

var (
	ErrTransitionShipmentCommandIsNotConstructed = errors.New(
		"TransitionShipmentCommand must be created via NewTransitionShipmentCommand constructor",
	)

	// ErrTargetIsNotRequestable is returned for states the workflow derives on
	// its own and never accepts as a request.
	ErrTargetIsNotRequestable = errs.NewValueIsInvalidError("target status")
)

// TransitionShipmentCommand represents a request to move a whole shipment to
// a target state. Retained requires the fiscal hold input, DeliveredFinal
// requires the receiver details. PartiallyDelivered cannot be requested: it
// only ever results from document derivation.
//
// Example:
//
//	cmd, err := NewTransitionShipmentCommand(shipmentID, shipment.DeliveredFinal,
//	    nil, &DeliveryInput{ReceiverName: "Ana", DeliveryDate: "2026-03-01", DeliveryTime: "14:30"})
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
type TransitionShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	target     shipment.Status

	fiscalAction *shipment.FiscalAction
	details      *shipment.DeliveryDetails

	guard guard.ConstructorGuard
}

// NewTransitionShipmentCommand creates a command to transition a shipment.
// Requestable targets are Retained, InTransit, Delivered and DeliveredFinal.
func NewTransitionShipmentCommand(
	shipmentID kernel.UUID,
	target shipment.Status,
	retention *RetentionInput,
	delivery *DeliveryInput,
) (TransitionShipmentCommand, error) {
	transitionCommand := TransitionShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transitionCommand.setShipmentID(shipmentID),
		transitionCommand.setTarget(target),
	); err != nil {
		return TransitionShipmentCommand{}, err
	}

	if err := transitionCommand.setPayload(retention, delivery); err != nil {
		return TransitionShipmentCommand{}, err
	}

	return transitionCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionShipmentCommand) Validate() error {
	return c.guard.Validate(ErrTransitionShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to transition.
func (c TransitionShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Target returns the requested shipment state.
func (c TransitionShipmentCommand) Target() shipment.Status {
	return c.target
}

// FiscalAction returns the hold record for retained transitions, nil otherwise.
func (c TransitionShipmentCommand) FiscalAction() *shipment.FiscalAction {
	return c.fiscalAction
}

// Details returns the receiver details for final transitions, nil otherwise.
func (c TransitionShipmentCommand) Details() *shipment.DeliveryDetails {
	return c.details
}

func (c *TransitionShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *TransitionShipmentCommand) setTarget(target shipment.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if target == shipment.PartiallyDelivered {
		return ErrTargetIsNotRequestable
	}

	c.target = target
	return nil
}

func (c *TransitionShipmentCommand) setPayload(retention *RetentionInput, delivery *DeliveryInput) error {
	switch c.target {
	case shipment.Retained:
		if retention == nil {
			return ErrRetentionInputIsRequired
		}
		action, err := retention.toFiscalAction()
		if err != nil {
			return err
		}
		c.fiscalAction = &action
	case shipment.DeliveredFinal:
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
