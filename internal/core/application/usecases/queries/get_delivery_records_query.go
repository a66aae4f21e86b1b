package queries

import (
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/guard"
)

var ErrGetDeliveryRecordsQueryIsNotConstructed = errors.New(
	"GetDeliveryRecordsQuery must be created via NewGetDeliveryRecordsQuery constructor",
)

// GetDeliveryRecordsQuery retrieves the delivery ledger of one client. This
// is where the records created by the delivery cascade can be inspected.
type GetDeliveryRecordsQuery struct {
	clientID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryRecordsQuery creates a query for a client's delivery ledger.
func NewGetDeliveryRecordsQuery(clientID kernel.UUID) (GetDeliveryRecordsQuery, error) {
	if err := clientID.Validate(); err != nil {
		return GetDeliveryRecordsQuery{}, err
	}

	return GetDeliveryRecordsQuery{
		clientID: clientID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryRecordsQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryRecordsQueryIsNotConstructed)
}

// ClientID returns the client whose ledger is requested.
func (q GetDeliveryRecordsQuery) ClientID() kernel.UUID {
	return q.clientID
}

// GetDeliveryRecordsQueryResponse is one delivery ledger entry.
type GetDeliveryRecordsQueryResponse struct {
	ID           kernel.UUID
	MinuteNumber string
	Receiver     string
	DeliveryDate string
	DeliveryTime string
	Weight       float64
	Packages     int
	Notes        string
}
