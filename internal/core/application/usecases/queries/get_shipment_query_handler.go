package queries

import (
	"context"
	"database/sql"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetShipmentQueryHandler retrieves one shipment with its documents from the
// database.
//
// Example:
//
//	handler := NewGetShipmentQueryHandler(db)
//	query, _ := NewGetShipmentQuery(shipmentID)
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%s is %s with %d documents\n",
//	    view.TrackingNumber, view.Status, len(view.Documents))
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentQueryHandler creates a handler for single shipment reads.
func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError when no shipment
// matches the identifier.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	response, err := h.readShipment(ctx, query.ShipmentID())
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	documents, err := h.readDocuments(ctx, query.ShipmentID())
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	response.Documents = documents

	return response, nil
}

func (h GetShipmentQueryHandler) readShipment(
	ctx context.Context, shipmentID kernel.UUID,
) (GetShipmentQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			client_id,
			tracking_number,
			carrier_name,
			transport_mode,
			packages,
			weight,
			arrival_date,
			arrival_flight,
			status,
			retention_reason,
			retention_amount,
			delivery_receiver,
			delivery_date,
			delivery_time
		FROM shipments
		WHERE id = ?
	`, shipmentID.Bytes()).Rows()
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetShipmentQueryResponse{}, err
		}
		return GetShipmentQueryResponse{}, errs.NewObjectNotFoundError("shipmentID", shipmentID)
	}

	var response GetShipmentQueryResponse
	var id, clientID uuid.UUID
	var transportMode, status int
	var arrivalDate sql.NullTime
	var retentionReason, receiver, deliveryDate, deliveryTime sql.NullString
	var retentionAmount decimal.NullDecimal

	if err = rows.Scan(
		&id,
		&clientID,
		&response.TrackingNumber,
		&response.CarrierName,
		&transportMode,
		&response.Packages,
		&response.Weight,
		&arrivalDate,
		&response.ArrivalFlight,
		&status,
		&retentionReason,
		&retentionAmount,
		&receiver,
		&deliveryDate,
		&deliveryTime,
	); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetShipmentQueryResponse{}, err
	}
	if response.ClientID, err = kernel.UUIDFromBytes(clientID[:]); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	if arrivalDate.Valid {
		response.ArrivalDate = arrivalDate.Time.Format("2006-01-02")
	}
	response.TransportMode = shipment.TransportMode(transportMode).String()
	response.Status = shipment.Status(status).String()
	response.Retained = shipment.Status(status).IsRetained()
	response.RetentionReason = retentionReason.String
	if retentionAmount.Valid {
		response.RetentionAmount = retentionAmount.Decimal.String()
	}
	response.ReceiverName = receiver.String
	response.DeliveryDate = deliveryDate.String
	response.DeliveryTime = deliveryTime.String

	return response, rows.Err()
}

func (h GetShipmentQueryHandler) readDocuments(
	ctx context.Context, shipmentID kernel.UUID,
) ([]DocumentResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			minute_number,
			packages,
			weight,
			priority,
			status,
			retention_reason
		FROM documents
		WHERE shipment_id = ?
		ORDER BY name, id
	`, shipmentID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	documents := make([]DocumentResponse, 0)
	for rows.Next() {
		var document DocumentResponse
		var id uuid.UUID
		var status int
		var retentionReason sql.NullString

		if err = rows.Scan(
			&id,
			&document.Name,
			&document.MinuteNumber,
			&document.Packages,
			&document.Weight,
			&document.Priority,
			&status,
			&retentionReason,
		); err != nil {
			return nil, err
		}

		if document.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		document.Status = shipment.DocumentStatus(status).String()
		document.Retained = shipment.DocumentStatus(status) == shipment.DocumentRetained
		document.RetentionReason = retentionReason.String
		documents = append(documents, document)
	}

	return documents, rows.Err()
}
