package commands

import (
	"errors"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"
	"freightops/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// DocumentInput carries the attributes of one document registered together
// with its shipment. Packages and weight of zero mean the document has no
// totals of its own and falls back to the shipment's.
type DocumentInput struct {
	Name           string
	MinuteNumber   string
	InvoiceNumbers []string
	Packages       int
	Weight         float64
	Notes          string
	Priority       bool
}

// CreateShipmentCommand represents a request to register a new shipment,
// optionally with its individually tracked documents.
//
// Example:
//
//	shipmentID := kernel.NewUUID()
//	cmd, err := NewCreateShipmentCommand(shipmentID, clientID,
//	    "CTE-100", "Skyfreight", shipment.Air, 3, 120.5, nil, "SF-441", nil)
//	if err != nil {
//	    return fmt.Errorf("invalid shipment data: %w", err)
//	}
//
//	handler := NewCreateShipmentCommandHandler(uowFactory)
//	created, err := handler.Handle(ctx, cmd)
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID     kernel.UUID
	clientID       kernel.UUID
	trackingNumber string
	carrierName    string
	transportMode  shipment.TransportMode
	packages       int
	weight         float64
	arrivalDate    *time.Time
	arrivalFlight  string
	documents      []DocumentInput

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to register a new shipment.
// Validates identifiers, the tracking number, the carrier, the transport
// mode, non-negative totals, and the name of every document.
func NewCreateShipmentCommand(
	shipmentID kernel.UUID,
	clientID kernel.UUID,
	trackingNumber string,
	carrierName string,
	transportMode shipment.TransportMode,
	packages int,
	weight float64,
	arrivalDate *time.Time,
	arrivalFlight string,
	documents []DocumentInput,
) (CreateShipmentCommand, error) {
	createCommand := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		createCommand.setShipmentID(shipmentID),
		createCommand.setClientID(clientID),
		createCommand.setTrackingNumber(trackingNumber),
		createCommand.setCarrierName(carrierName),
		createCommand.setTransportMode(transportMode),
		createCommand.setTotals(packages, weight),
		createCommand.setDocuments(documents),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	createCommand.arrivalDate = arrivalDate
	createCommand.arrivalFlight = arrivalFlight
	return createCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier the new shipment will carry.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// ClientID returns the owning client's identifier.
func (c CreateShipmentCommand) ClientID() kernel.UUID {
	return c.clientID
}

// TrackingNumber returns the carrier tracking reference.
func (c CreateShipmentCommand) TrackingNumber() string {
	return c.trackingNumber
}

// CarrierName returns the freight carrier.
func (c CreateShipmentCommand) CarrierName() string {
	return c.carrierName
}

// TransportMode returns how the shipment travels.
func (c CreateShipmentCommand) TransportMode() shipment.TransportMode {
	return c.transportMode
}

// Packages returns the total package count.
func (c CreateShipmentCommand) Packages() int {
	return c.packages
}

// Weight returns the total weight in kilograms.
func (c CreateShipmentCommand) Weight() float64 {
	return c.weight
}

// ArrivalDate returns when the shipment arrived or is due, nil if unknown.
func (c CreateShipmentCommand) ArrivalDate() *time.Time {
	return c.arrivalDate
}

// ArrivalFlight returns the inbound flight for air shipments.
func (c CreateShipmentCommand) ArrivalFlight() string {
	return c.arrivalFlight
}

// Documents returns the documents registered together with the shipment.
func (c CreateShipmentCommand) Documents() []DocumentInput {
	out := make([]DocumentInput, len(c.documents))
	copy(out, c.documents)
	return out
}

func (c *CreateShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *CreateShipmentCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}

	c.clientID = clientID
	return nil
}

func (c *CreateShipmentCommand) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return shipment.ErrTrackingNumberIsRequired
	}

	c.trackingNumber = trackingNumber
	return nil
}

func (c *CreateShipmentCommand) setCarrierName(carrierName string) error {
	if carrierName == "" {
		return shipment.ErrCarrierNameIsRequired
	}

	c.carrierName = carrierName
	return nil
}

func (c *CreateShipmentCommand) setTransportMode(transportMode shipment.TransportMode) error {
	if err := transportMode.Validate(); err != nil {
		return err
	}

	c.transportMode = transportMode
	return nil
}

func (c *CreateShipmentCommand) setTotals(packages int, weight float64) error {
	if packages < 0 {
		return errs.NewValueIsInvalidError("packages")
	}
	if weight < 0 {
		return errs.NewValueIsInvalidError("weight")
	}

	c.packages = packages
	c.weight = weight
	return nil
}

func (c *CreateShipmentCommand) setDocuments(documents []DocumentInput) error {
	for _, document := range documents {
		if document.Name == "" {
			return shipment.ErrDocumentNameIsRequired
		}
	}

	c.documents = make([]DocumentInput, len(documents))
	copy(c.documents, documents)
	return nil
}
