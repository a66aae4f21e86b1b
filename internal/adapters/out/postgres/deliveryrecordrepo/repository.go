package deliveryrecordrepo

import (
	"context"
	"errors"
	"fmt"

	"freightops/internal/core/domain/model/deliveryrecord"
	"freightops/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormDeliveryRecordRepository implements DeliveryRecordRepository using
// GORM. The ledger is append-only: records are never updated or deleted.
//
// Requires the connection to be opened with TranslateError so the unique
// index violation surfaces as gorm.ErrDuplicatedKey.
type GormDeliveryRecordRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRecordRepository creates a new GORM delivery record
// repository.
func NewGormDeliveryRecordRepository(db *gorm.DB) *GormDeliveryRecordRepository {
	return &GormDeliveryRecordRepository{db: db}
}

// Add appends a record to the ledger. A minute number already taken for the
// client is reported as deliveryrecord.ErrMinuteNumberTaken.
func (r *GormDeliveryRecordRepository) Add(ctx context.Context, record *deliveryrecord.DeliveryRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", deliveryrecord.ErrMinuteNumberTaken, record.MinuteNumber())
		}
		return err
	}

	return nil
}

// GetAllByClient retrieves a client's full delivery ledger sorted by minute
// number.
func (r *GormDeliveryRecordRepository) GetAllByClient(
	ctx context.Context, clientID kernel.UUID,
) ([]*deliveryrecord.DeliveryRecord, error) {
	if err := clientID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryRecordDTO
	if err := r.db.WithContext(ctx).
		Order("minute_number").
		Find(&dtos, "client_id = ?", clientID.Bytes()).Error; err != nil {
		return nil, err
	}

	records := make([]*deliveryrecord.DeliveryRecord, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
