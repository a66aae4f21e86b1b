package ports

import (
	"context"

	"freightops/internal/core/domain/model/deliveryrecord"
	"freightops/internal/core/domain/model/kernel"
)

// DeliveryRecordRepository defines the persistence contract for the delivery
// ledger. The ledger offers no multi-record write primitive: each Add is an
// independent write, which is why the delivery cascade cannot be atomic
// across records.
type DeliveryRecordRepository interface {
	// Add persists one delivery ledger entry. Returns
	// deliveryrecord.ErrMinuteNumberTaken when the minute number is already
	// used within the client's scope.
	Add(ctx context.Context, aggregate *deliveryrecord.DeliveryRecord) error

	// GetAllByClient retrieves all ledger entries of one client.
	GetAllByClient(ctx context.Context, clientID kernel.UUID) ([]*deliveryrecord.DeliveryRecord, error)
}
