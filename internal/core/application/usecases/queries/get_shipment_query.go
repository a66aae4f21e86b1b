// Package queries contains read-only operations for the workflow's view
// side. Query handlers read the database directly with raw SQL instead of
// going through the aggregates, returning flat response models shaped for
// display.
package queries

import (
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/guard"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery retrieves one shipment with its documents.
//
// Example:
//
//	query, err := NewGetShipmentQuery(shipmentID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetShipmentQuery struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentQuery creates a query for one shipment by its identifier.
func NewGetShipmentQuery(shipmentID kernel.UUID) (GetShipmentQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}

	return GetShipmentQuery{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// ShipmentID returns the identifier of the requested shipment.
func (q GetShipmentQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// GetShipmentQueryResponse is the display model of one shipment, including
// its documents and the active retention and delivery information.
type GetShipmentQueryResponse struct {
	ID              kernel.UUID
	ClientID        kernel.UUID
	TrackingNumber  string
	CarrierName     string
	TransportMode   string
	Packages        int
	Weight          float64
	ArrivalDate     string
	ArrivalFlight   string
	Status          string
	Retained        bool
	RetentionReason string
	RetentionAmount string
	ReceiverName    string
	DeliveryDate    string
	DeliveryTime    string
	Documents       []DocumentResponse
}

// DocumentResponse is the display model of one document of a shipment.
type DocumentResponse struct {
	ID              kernel.UUID
	Name            string
	MinuteNumber    string
	Packages        int
	Weight          float64
	Priority        bool
	Status          string
	Retained        bool
	RetentionReason string
}
