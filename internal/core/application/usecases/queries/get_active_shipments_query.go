package queries

import (
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/guard"
)

var ErrGetActiveShipmentsQueryIsNotConstructed = errors.New(
	"GetActiveShipmentsQuery must be created via NewGetActiveShipmentsQuery constructor",
)

// GetActiveShipmentsQuery retrieves every shipment still in the working set,
// which is everything not yet fully delivered. This backs the default
// operational view.
type GetActiveShipmentsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveShipmentsQuery creates a query for the active shipment list.
func NewGetActiveShipmentsQuery() GetActiveShipmentsQuery {
	return GetActiveShipmentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveShipmentsQueryIsNotConstructed)
}

// GetActiveShipmentsQueryResponse is one row of the active shipment list,
// with document progress counted in the database.
type GetActiveShipmentsQueryResponse struct {
	ID                 kernel.UUID
	TrackingNumber     string
	CarrierName        string
	TransportMode      string
	Status             string
	Retained           bool
	TotalDocuments     int
	DeliveredDocuments int
}
