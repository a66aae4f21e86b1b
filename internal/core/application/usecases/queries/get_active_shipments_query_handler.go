package queries

import (
	"context"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveShipmentsQueryHandler retrieves the active shipment list from the
// database. Fully delivered shipments drop out of this view.
//
// Example:
//
//	handler := NewGetActiveShipmentsQueryHandler(db)
//	active, err := handler.Handle(ctx, NewGetActiveShipmentsQuery())
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d shipments in the working set\n", len(active))
type GetActiveShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveShipmentsQueryHandler creates a handler for active shipment
// list reads.
func NewGetActiveShipmentsQueryHandler(db *gorm.DB) GetActiveShipmentsQueryHandler {
	return GetActiveShipmentsQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by tracking number for
// consistent output.
func (h GetActiveShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveShipmentsQuery,
) ([]GetActiveShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	shipments := make([]GetActiveShipmentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.tracking_number,
			s.carrier_name,
			s.transport_mode,
			s.status,
			COUNT(d.id),
			COUNT(d.id) FILTER (WHERE d.status = ?)
		FROM shipments s
		LEFT JOIN documents d ON d.shipment_id = s.id
		WHERE s.status != ?
		GROUP BY s.id
		ORDER BY s.tracking_number, s.id
	`, shipment.DocumentDelivered, shipment.DeliveredFinal).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row GetActiveShipmentsQueryResponse
		var id uuid.UUID
		var transportMode, status int

		if err = rows.Scan(
			&id,
			&row.TrackingNumber,
			&row.CarrierName,
			&transportMode,
			&status,
			&row.TotalDocuments,
			&row.DeliveredDocuments,
		); err != nil {
			return nil, err
		}

		if row.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		row.TransportMode = shipment.TransportMode(transportMode).String()
		row.Status = shipment.Status(status).String()
		row.Retained = shipment.Status(status).IsRetained()
		shipments = append(shipments, row)
	}

	return shipments, rows.Err()
}
