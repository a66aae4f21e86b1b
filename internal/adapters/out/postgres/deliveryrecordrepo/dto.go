// Package deliveryrecordrepo provides data transfer objects and mapping
// functions for delivery ledger persistence.
package deliveryrecordrepo

import (
	"freightops/internal/core/domain/model/deliveryrecord"
	"freightops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryRecordDTO represents the database structure for persisting
// delivery ledger entries. The minute number is unique per client, which is
// what lets a retried cascade detect records it already wrote.
type DeliveryRecordDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_client_minute"`
	MinuteNumber string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_client_minute"`
	Receiver     string    `gorm:"type:varchar(255);not null"`
	DeliveryDate string    `gorm:"type:varchar(32)"`
	DeliveryTime string    `gorm:"type:varchar(16)"`
	Weight       float64   `gorm:"not null"`
	Packages     int       `gorm:"type:int;not null"`
	Notes        string    `gorm:"type:text"`
}

// TableName specifies the database table name for delivery record entities.
func (DeliveryRecordDTO) TableName() string {
	return "delivery_records"
}

func fromDomain(record *deliveryrecord.DeliveryRecord) DeliveryRecordDTO {
	return DeliveryRecordDTO{
		ID:           record.ID().Bytes(),
		ClientID:     record.ClientID().Bytes(),
		MinuteNumber: record.MinuteNumber(),
		Receiver:     record.Receiver(),
		DeliveryDate: record.DeliveryDate(),
		DeliveryTime: record.DeliveryTime(),
		Weight:       record.Weight(),
		Packages:     record.Packages(),
		Notes:        record.Notes(),
	}
}

func toDomain(dto DeliveryRecordDTO) (*deliveryrecord.DeliveryRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	return deliveryrecord.RestoreDeliveryRecord(
		id,
		clientID,
		dto.MinuteNumber,
		dto.Receiver,
		dto.DeliveryDate,
		dto.DeliveryTime,
		dto.Weight,
		dto.Packages,
		dto.Notes,
	)
}
