package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"freightops/internal/core/domain/model/deliveryrecord"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
)

// ErrNoDocumentsSelected is returned when a per-document cascade is requested
// with an empty document selection.
var ErrNoDocumentsSelected = errors.New("no documents selected for delivery")

// docIDPrefixLen is how many characters of a document id seed a generated
// minute number when the document has none of its own.
const docIDPrefixLen = 4

// DeliveryCascade is a domain service that synthesizes delivery ledger
// records for a committed delivery. It owns the derivation rules for minute
// numbers, the fallback of weight and packages from document to shipment
// totals, and the generated notes that link a record back to its origin.
//
// The service only builds records; persisting them (and dealing with the
// ledger's lack of a multi-record write primitive) is the caller's concern.
//
// Example usage:
//
//	cascade := NewDeliveryCascade()
//	records, err := cascade.RecordsForDocuments(s, s.Documents(), details)
//	if err != nil {
//	    return err
//	}
//	for _, record := range records {
//	    // persist record to the delivery ledger
//	}
type DeliveryCascade struct{}

// NewDeliveryCascade creates a new DeliveryCascade instance.
func NewDeliveryCascade() DeliveryCascade {
	return DeliveryCascade{}
}

// RecordsForDocuments builds one delivery record per selected document.
//
// Derivation rules:
//   - minute number: the document's own, else "{tracking}-{first 4 chars of
//     the document id}"
//   - weight and packages: the document's own when set, else the shipment's
//     totals
//   - notes: a generated description naming the document and, when present,
//     its invoice numbers on a following line
func (c DeliveryCascade) RecordsForDocuments(
	s *shipment.Shipment,
	documents []*shipment.Document,
	details shipment.DeliveryDetails,
) ([]*deliveryrecord.DeliveryRecord, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}
	if len(documents) == 0 {
		return nil, ErrNoDocumentsSelected
	}

	records := make([]*deliveryrecord.DeliveryRecord, 0, len(documents))
	for _, document := range documents {
		record, err := c.recordForDocument(s, document, details)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// RecordForShipment builds the single delivery record for finalizing a
// shipment that has no individually tracked documents. The minute number is
// derived from the tracking number and the last four digits of the given
// timestamp.
func (c DeliveryCascade) RecordForShipment(
	s *shipment.Shipment,
	details shipment.DeliveryDetails,
	now time.Time,
) (*deliveryrecord.DeliveryRecord, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}

	minuteNumber := fmt.Sprintf("%s-%s", s.TrackingNumber(), timestampSuffix(now))
	notes := fmt.Sprintf("Delivery of shipment %s (%s)", s.TrackingNumber(), s.CarrierName())

	return deliveryrecord.NewDeliveryRecord(
		kernel.NewUUID(),
		s.ClientID(),
		minuteNumber,
		details.ReceiverName(),
		details.DeliveryDate(),
		details.DeliveryTime(),
		s.Weight(),
		s.Packages(),
		notes,
	)
}

func (c DeliveryCascade) recordForDocument(
	s *shipment.Shipment,
	document *shipment.Document,
	details shipment.DeliveryDetails,
) (*deliveryrecord.DeliveryRecord, error) {
	if err := document.Validate(); err != nil {
		return nil, err
	}

	minuteNumber := document.MinuteNumber()
	if minuteNumber == "" {
		minuteNumber = fmt.Sprintf("%s-%s", s.TrackingNumber(), documentIDPrefix(document.ID()))
	}

	weight := document.Weight()
	if weight == 0 {
		weight = s.Weight()
	}

	packages := document.Packages()
	if packages == 0 {
		packages = s.Packages()
	}

	notes := fmt.Sprintf("Delivery of document %s, shipment %s", document.Name(), s.TrackingNumber())
	if invoices := document.InvoiceNumbers(); len(invoices) > 0 {
		notes += "\nInvoices: " + strings.Join(invoices, ", ")
	}

	return deliveryrecord.NewDeliveryRecord(
		kernel.NewUUID(),
		s.ClientID(),
		minuteNumber,
		details.ReceiverName(),
		details.DeliveryDate(),
		details.DeliveryTime(),
		weight,
		packages,
		notes,
	)
}

// documentIDPrefix returns the first characters of a document id used to
// seed a generated minute number.
func documentIDPrefix(id kernel.UUID) string {
	str := id.String()
	if len(str) < docIDPrefixLen {
		return str
	}
	return str[:docIDPrefixLen]
}

// timestampSuffix returns the last four digits of the unix timestamp.
func timestampSuffix(now time.Time) string {
	str := strconv.FormatInt(now.Unix(), 10)
	if len(str) <= 4 {
		return str
	}
	return str[len(str)-4:]
}
