package queries

import (
	"context"

	"freightops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryRecordsQueryHandler retrieves a client's delivery ledger from
// the database.
type GetDeliveryRecordsQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryRecordsQueryHandler creates a handler for delivery ledger
// reads.
func NewGetDeliveryRecordsQueryHandler(db *gorm.DB) GetDeliveryRecordsQueryHandler {
	return GetDeliveryRecordsQueryHandler{db: db}
}

// Handle executes the query. Records are sorted by minute number.
func (h GetDeliveryRecordsQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryRecordsQuery,
) ([]GetDeliveryRecordsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records := make([]GetDeliveryRecordsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			minute_number,
			receiver,
			delivery_date,
			delivery_time,
			weight,
			packages,
			notes
		FROM delivery_records
		WHERE client_id = ?
		ORDER BY minute_number
	`, query.ClientID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var record GetDeliveryRecordsQueryResponse
		var id uuid.UUID

		if err = rows.Scan(
			&id,
			&record.MinuteNumber,
			&record.Receiver,
			&record.DeliveryDate,
			&record.DeliveryTime,
			&record.Weight,
			&record.Packages,
			&record.Notes,
		); err != nil {
			return nil, err
		}

		if record.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
