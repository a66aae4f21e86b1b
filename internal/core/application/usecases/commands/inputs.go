package commands

import (
	"time"

	"freightops/internal/core/domain/model/shipment"
)

// RetentionInput carries the user-entered fields of a fiscal hold. Only the
// reason is mandatory; the amount is free text and parsed leniently.
type RetentionInput struct {
	ActionNumber string
	Reason       string
	Amount       string
	PaymentDate  *time.Time
	ReleaseDate  *time.Time
	Notes        string
}

func (in RetentionInput) toFiscalAction() (shipment.FiscalAction, error) {
	return shipment.NewFiscalAction(
		in.ActionNumber,
		in.Reason,
		shipment.ParseAmount(in.Amount),
		in.PaymentDate,
		in.ReleaseDate,
		in.Notes,
	)
}

// DeliveryInput carries the receiver details captured when a delivery is
// committed. All three fields are mandatory.
type DeliveryInput struct {
	ReceiverName string
	DeliveryDate string
	DeliveryTime string
}

func (in DeliveryInput) toDeliveryDetails() (shipment.DeliveryDetails, error) {
	return shipment.NewDeliveryDetails(in.ReceiverName, in.DeliveryDate, in.DeliveryTime)
}
