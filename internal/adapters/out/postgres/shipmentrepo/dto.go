// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. This package implements the repository pattern
// for the shipment aggregate, handling the conversion between domain
// entities and database representations.
package shipmentrepo

import (
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. Documents are a child table with cascading delete; the active
// retention record and the captured delivery details are embedded columns,
// present exactly when their marker column is non-null.
type ShipmentDTO struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey"`
	ClientID       uuid.UUID     `gorm:"type:uuid;not null;index"`
	TrackingNumber string        `gorm:"type:varchar(64);not null"`
	CarrierName    string        `gorm:"type:varchar(255);not null"`
	TransportMode  int           `gorm:"type:int;not null"`
	Packages       int           `gorm:"type:int;not null"`
	Weight         float64       `gorm:"not null"`
	ArrivalDate    *time.Time
	ArrivalFlight  string        `gorm:"type:varchar(32)"`
	Status         int           `gorm:"type:int;not null;index"`
	Retention      RetentionDTO  `gorm:"embedded;embeddedPrefix:retention_"`
	Delivery       DeliveryDTO   `gorm:"embedded;embeddedPrefix:delivery_"`
	Documents      []DocumentDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// DocumentDTO represents the database structure for persisting document
// entities. Links to its shipment via foreign key.
type DocumentDTO struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey"`
	ShipmentID     uuid.UUID    `gorm:"type:uuid;not null;index"`
	Name           string       `gorm:"type:varchar(255);not null"`
	MinuteNumber   string       `gorm:"type:varchar(64)"`
	InvoiceNumbers []string     `gorm:"serializer:json;type:text"`
	Packages       int          `gorm:"type:int;not null"`
	Weight         float64      `gorm:"not null"`
	Notes          string       `gorm:"type:text"`
	Priority       bool         `gorm:"not null"`
	Status         int          `gorm:"type:int;not null;index"`
	Retention      RetentionDTO `gorm:"embedded;embeddedPrefix:retention_"`
	Delivery       DeliveryDTO  `gorm:"embedded;embeddedPrefix:delivery_"`
}

// TableName specifies the database table name for document entities.
func (DocumentDTO) TableName() string {
	return "documents"
}

// RetentionDTO represents the embedded fiscal hold columns. A non-null
// reason marks an active hold; every other column is optional.
type RetentionDTO struct {
	ActionNumber *string          `gorm:"type:varchar(64)"`
	Reason       *string          `gorm:"type:text"`
	Amount       *decimal.Decimal `gorm:"type:numeric(14,2)"`
	PaymentDate  *time.Time
	ReleaseDate  *time.Time
	Notes        *string          `gorm:"type:text"`
}

// DeliveryDTO represents the embedded receiver columns captured when a
// delivery is committed. A non-null receiver marks captured details.
type DeliveryDTO struct {
	Receiver *string `gorm:"type:varchar(255)"`
	Date     *string `gorm:"type:varchar(32)"`
	Time     *string `gorm:"type:varchar(16)"`
}

// fromDomain converts a shipment aggregate to its database representation,
// including all documents.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	shipmentID := aggregate.ID().Bytes()
	documents := make([]DocumentDTO, 0, len(aggregate.Documents()))
	for _, document := range aggregate.Documents() {
		documents = append(documents, documentFromDomain(shipmentID, document))
	}

	return ShipmentDTO{
		ID:             shipmentID,
		ClientID:       aggregate.ClientID().Bytes(),
		TrackingNumber: aggregate.TrackingNumber(),
		CarrierName:    aggregate.CarrierName(),
		TransportMode:  int(aggregate.TransportMode()),
		Packages:       aggregate.Packages(),
		Weight:         aggregate.Weight(),
		ArrivalDate:    aggregate.ArrivalDate(),
		ArrivalFlight:  aggregate.ArrivalFlight(),
		Status:         int(aggregate.Status()),
		Retention:      retentionFromDomain(aggregate.FiscalAction()),
		Delivery:       deliveryFromDomain(aggregate.Delivery()),
		Documents:      documents,
	}
}

func documentFromDomain(shipmentID uuid.UUID, document *shipment.Document) DocumentDTO {
	return DocumentDTO{
		ID:             document.ID().Bytes(),
		ShipmentID:     shipmentID,
		Name:           document.Name(),
		MinuteNumber:   document.MinuteNumber(),
		InvoiceNumbers: document.InvoiceNumbers(),
		Packages:       document.Packages(),
		Weight:         document.Weight(),
		Notes:          document.Notes(),
		Priority:       document.IsPriority(),
		Status:         int(document.Status()),
		Retention:      retentionFromDomain(document.Retention()),
		Delivery:       deliveryFromDomain(document.Delivery()),
	}
}

func retentionFromDomain(action *shipment.FiscalAction) RetentionDTO {
	if action == nil {
		return RetentionDTO{}
	}

	amount := action.Amount()
	reason := action.Reason()
	return RetentionDTO{
		ActionNumber: optionalString(action.ActionNumber()),
		Reason:       &reason,
		Amount:       &amount,
		PaymentDate:  action.PaymentDate(),
		ReleaseDate:  action.ReleaseDate(),
		Notes:        optionalString(action.Notes()),
	}
}

func deliveryFromDomain(details *shipment.DeliveryDetails) DeliveryDTO {
	if details == nil {
		return DeliveryDTO{}
	}

	receiver := details.ReceiverName()
	date := details.DeliveryDate()
	timeOfDay := details.DeliveryTime()
	return DeliveryDTO{
		Receiver: &receiver,
		Date:     &date,
		Time:     &timeOfDay,
	}
}

// toDomain converts a database DTO to a shipment aggregate, reconstructing
// all documents and lifecycle state using RestoreShipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	documents := make([]*shipment.Document, 0, len(dto.Documents))
	for _, documentDTO := range dto.Documents {
		document, documentErr := documentToDomain(documentDTO)
		if documentErr != nil {
			return nil, documentErr
		}
		documents = append(documents, document)
	}

	retention, err := retentionToDomain(dto.Retention)
	if err != nil {
		return nil, err
	}
	delivery, err := deliveryToDomain(dto.Delivery)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(
		id,
		clientID,
		dto.TrackingNumber,
		dto.CarrierName,
		shipment.TransportMode(dto.TransportMode),
		dto.Packages,
		dto.Weight,
		dto.ArrivalDate,
		dto.ArrivalFlight,
		shipment.Status(dto.Status),
		documents,
		retention,
		delivery,
	)
}

func documentToDomain(dto DocumentDTO) (*shipment.Document, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	retention, err := retentionToDomain(dto.Retention)
	if err != nil {
		return nil, err
	}
	delivery, err := deliveryToDomain(dto.Delivery)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreDocument(
		id,
		dto.Name,
		dto.MinuteNumber,
		dto.InvoiceNumbers,
		dto.Packages,
		dto.Weight,
		dto.Notes,
		dto.Priority,
		shipment.DocumentStatus(dto.Status),
		retention,
		delivery,
	)
}

func retentionToDomain(dto RetentionDTO) (*shipment.FiscalAction, error) {
	if dto.Reason == nil {
		return nil, nil
	}

	amount := decimal.Zero
	if dto.Amount != nil {
		amount = *dto.Amount
	}

	action, err := shipment.NewFiscalAction(
		stringValue(dto.ActionNumber),
		*dto.Reason,
		amount,
		dto.PaymentDate,
		dto.ReleaseDate,
		stringValue(dto.Notes),
	)
	if err != nil {
		return nil, err
	}
	return &action, nil
}

func deliveryToDomain(dto DeliveryDTO) (*shipment.DeliveryDetails, error) {
	if dto.Receiver == nil {
		return nil, nil
	}

	details, err := shipment.NewDeliveryDetails(
		*dto.Receiver, stringValue(dto.Date), stringValue(dto.Time))
	if err != nil {
		return nil, err
	}
	return &details, nil
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
