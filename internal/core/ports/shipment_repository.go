package ports

import (
	"context"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment
// aggregates, including their documents and retention records.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate, replacing
	// its document set with the aggregate's current one.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate with its documents by identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetAllActive retrieves all shipments that should appear in default
	// views, excluding finally delivered ones.
	GetAllActive(ctx context.Context) ([]*shipment.Shipment, error)

	// Delete destructively removes a shipment and its documents.
	// Callers must check the aggregate's deletion policy first.
	Delete(ctx context.Context, id kernel.UUID) error
}
