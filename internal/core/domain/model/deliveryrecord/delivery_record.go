// Package deliveryrecord contains the delivery ledger aggregate: records
// proving that a parcel reached a receiver. Records are created by the
// delivery cascade as a side effect of completing delivery on a shipment or
// document and are never updated or deleted by the workflow engine.
package deliveryrecord

import (
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/errs"
	"freightops/internal/pkg/guard"
)

var (
	// ErrMinuteNumberIsRequired is returned when creating a record without a
	// minute number.
	ErrMinuteNumberIsRequired = errs.NewValueIsRequiredError("minuteNumber")

	// ErrReceiverIsRequired is returned when creating a record without a receiver.
	ErrReceiverIsRequired = errs.NewValueIsRequiredError("receiver")

	// ErrMinuteNumberTaken is returned by the ledger when a minute number is
	// already used within the client's scope.
	ErrMinuteNumberTaken = errors.New("minute number already exists for this client")

	// ErrDeliveryRecordIsNotConstructed is returned when using an improperly
	// initialized DeliveryRecord.
	ErrDeliveryRecordIsNotConstructed = errors.New(
		"DeliveryRecord must be created via NewDeliveryRecord constructor",
	)
)

// DeliveryRecord is one delivery ledger entry. The minute number is unique
// within a client's scope; the notes are free text and are the only link
// back to the originating shipment or document, a reference by convention
// rather than by identifier.
type DeliveryRecord struct {
	// id uniquely identifies the record
	id kernel.UUID
	// clientID scopes the record and its minute number to one client
	clientID kernel.UUID
	// minuteNumber is the human tracking code, unique per client
	minuteNumber string
	// receiver is who signed for the parcel
	receiver string
	// deliveryDate is the operator-entered delivery date
	deliveryDate string
	// deliveryTime is the operator-entered delivery time
	deliveryTime string
	// weight is in kilograms
	weight float64
	// packages is the package count
	packages int
	// notes describes the originating shipment or document
	notes string

	guard guard.ConstructorGuard
}

// NewDeliveryRecord creates a delivery ledger entry.
// The minute number and receiver are mandatory; weight and packages must not
// be negative.
func NewDeliveryRecord(
	id kernel.UUID,
	clientID kernel.UUID,
	minuteNumber string,
	receiver string,
	deliveryDate string,
	deliveryTime string,
	weight float64,
	packages int,
	notes string,
) (*DeliveryRecord, error) {
	record := &DeliveryRecord{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		record.setID(id),
		record.setClientID(clientID),
		record.setMinuteNumber(minuteNumber),
		record.setReceiver(receiver),
		record.setWeight(weight),
		record.setPackages(packages),
	); err != nil {
		return nil, err
	}

	record.deliveryDate = deliveryDate
	record.deliveryTime = deliveryTime
	record.notes = notes
	return record, nil
}

// RestoreDeliveryRecord reconstructs a record from persistent storage.
func RestoreDeliveryRecord(
	id kernel.UUID,
	clientID kernel.UUID,
	minuteNumber string,
	receiver string,
	deliveryDate string,
	deliveryTime string,
	weight float64,
	packages int,
	notes string,
) (*DeliveryRecord, error) {
	return NewDeliveryRecord(id, clientID, minuteNumber, receiver, deliveryDate, deliveryTime,
		weight, packages, notes)
}

// Validate checks if the DeliveryRecord was properly constructed.
func (r *DeliveryRecord) Validate() error {
	if r == nil {
		return ErrDeliveryRecordIsNotConstructed
	}
	return r.guard.Validate(ErrDeliveryRecordIsNotConstructed)
}

// IsEqual compares two records by their unique identifiers.
func (r *DeliveryRecord) IsEqual(other *DeliveryRecord) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the record's unique identifier.
func (r *DeliveryRecord) ID() kernel.UUID {
	return r.id
}

// ClientID returns the owning client's identifier.
func (r *DeliveryRecord) ClientID() kernel.UUID {
	return r.clientID
}

// MinuteNumber returns the human tracking code, unique per client.
func (r *DeliveryRecord) MinuteNumber() string {
	return r.minuteNumber
}

// Receiver returns who signed for the parcel.
func (r *DeliveryRecord) Receiver() string {
	return r.receiver
}

// DeliveryDate returns the operator-entered delivery date.
func (r *DeliveryRecord) DeliveryDate() string {
	return r.deliveryDate
}

// DeliveryTime returns the operator-entered delivery time.
func (r *DeliveryRecord) DeliveryTime() string {
	return r.deliveryTime
}

// Weight returns the delivered weight in kilograms.
func (r *DeliveryRecord) Weight() float64 {
	return r.weight
}

// Packages returns the delivered package count.
func (r *DeliveryRecord) Packages() int {
	return r.packages
}

// Notes returns the free-text description of the record's origin.
func (r *DeliveryRecord) Notes() string {
	return r.notes
}

func (r *DeliveryRecord) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *DeliveryRecord) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	r.clientID = clientID
	return nil
}

func (r *DeliveryRecord) setMinuteNumber(minuteNumber string) error {
	if minuteNumber == "" {
		return ErrMinuteNumberIsRequired
	}
	r.minuteNumber = minuteNumber
	return nil
}

func (r *DeliveryRecord) setReceiver(receiver string) error {
	if receiver == "" {
		return ErrReceiverIsRequired
	}
	r.receiver = receiver
	return nil
}

func (r *DeliveryRecord) setWeight(weight float64) error {
	if weight < 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight is invalid",
			errors.New("weight must not be negative"))
	}
	r.weight = weight
	return nil
}

func (r *DeliveryRecord) setPackages(packages int) error {
	if packages < 0 {
		return errs.NewValueIsInvalidErrorWithCause("packages is invalid",
			errors.New("packages must not be negative"))
	}
	r.packages = packages
	return nil
}
