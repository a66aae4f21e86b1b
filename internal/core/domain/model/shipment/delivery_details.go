package shipment

import (
	"errors"
	"strings"

	"freightops/internal/pkg/errs"
	"freightops/internal/pkg/guard"
)

var (
	// ErrReceiverNameIsRequired is returned when delivery details lack a receiver.
	ErrReceiverNameIsRequired = errs.NewValueIsRequiredError("receiverName")
	// ErrDeliveryDateIsRequired is returned when delivery details lack a date.
	ErrDeliveryDateIsRequired = errs.NewValueIsRequiredError("deliveryDate")
	// ErrDeliveryTimeIsRequired is returned when delivery details lack a time.
	ErrDeliveryTimeIsRequired = errs.NewValueIsRequiredError("deliveryTime")

	// ErrDeliveryDetailsAreNotConstructed is returned when using improperly
	// initialized DeliveryDetails.
	ErrDeliveryDetailsAreNotConstructed = errors.New(
		"DeliveryDetails must be created via NewDeliveryDetails constructor",
	)
)

// DeliveryDetails captures who received a parcel and when. All three fields
// are mandatory: a delivery cannot be committed without them.
//
// Dates and times are kept in the operator-entered form ("2024-05-01",
// "14:00"); the engine treats them as opaque display values and never does
// date arithmetic on them.
type DeliveryDetails struct {
	receiverName string
	deliveryDate string
	deliveryTime string

	guard guard.ConstructorGuard
}

// NewDeliveryDetails creates delivery details, requiring all three fields.
func NewDeliveryDetails(receiverName, deliveryDate, deliveryTime string) (DeliveryDetails, error) {
	details := DeliveryDetails{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		details.setReceiverName(receiverName),
		details.setDeliveryDate(deliveryDate),
		details.setDeliveryTime(deliveryTime),
	); err != nil {
		return DeliveryDetails{}, err
	}

	return details, nil
}

// Validate ensures the details were created through NewDeliveryDetails.
func (d DeliveryDetails) Validate() error {
	return d.guard.Validate(ErrDeliveryDetailsAreNotConstructed)
}

// ReceiverName returns who received the parcel.
func (d DeliveryDetails) ReceiverName() string {
	return d.receiverName
}

// DeliveryDate returns the operator-entered delivery date.
func (d DeliveryDetails) DeliveryDate() string {
	return d.deliveryDate
}

// DeliveryTime returns the operator-entered delivery time.
func (d DeliveryDetails) DeliveryTime() string {
	return d.deliveryTime
}

func (d *DeliveryDetails) setReceiverName(receiverName string) error {
	if strings.TrimSpace(receiverName) == "" {
		return ErrReceiverNameIsRequired
	}
	d.receiverName = receiverName
	return nil
}

func (d *DeliveryDetails) setDeliveryDate(deliveryDate string) error {
	if strings.TrimSpace(deliveryDate) == "" {
		return ErrDeliveryDateIsRequired
	}
	d.deliveryDate = deliveryDate
	return nil
}

func (d *DeliveryDetails) setDeliveryTime(deliveryTime string) error {
	if strings.TrimSpace(deliveryTime) == "" {
		return ErrDeliveryTimeIsRequired
	}
	d.deliveryTime = deliveryTime
	return nil
}
