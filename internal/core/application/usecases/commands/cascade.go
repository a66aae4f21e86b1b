package commands

import (
	"context"
	"errors"
	"time"

	"freightops/internal/core/domain/model/deliveryrecord"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/core/domain/services"
	"freightops/internal/core/ports"
)

// deliverSelectedDocuments runs the per-document delivery cascade: for each
// selected document it writes the ledger record first and only then flips the
// document to delivered, so a document is never marked delivered without its
// record existing. Documents that are already delivered are skipped without
// producing a duplicate record.
//
// Ledger writes happen one by one outside any transaction. When a write
// fails, documents that already produced a record keep their new state; the
// failing document and everything after it is reported in the returned
// PartialCascadeError so the caller can still persist the partial progress.
//
// A duplicate minute number on Add means a previous cascade attempt wrote the
// record but did not persist the flipped document. The record is treated as
// already written and the document is flipped, which makes a retried cascade
// converge instead of failing forever.
func deliverSelectedDocuments(
	ctx context.Context,
	cascade services.DeliveryCascade,
	recordRepo ports.DeliveryRecordRepository,
	s *shipment.Shipment,
	documents []*shipment.Document,
	details shipment.DeliveryDetails,
) (int, *PartialCascadeError) {
	recordsCreated := 0

	for i, document := range documents {
		if document.IsDelivered() {
			continue
		}

		err := deliverOneDocument(ctx, cascade, recordRepo, s, document, details)
		if err != nil {
			return recordsCreated, NewPartialCascadeError(
				recordsCreated, remainingDocumentIDs(documents[i:]), err)
		}
		recordsCreated++
	}

	return recordsCreated, nil
}

func deliverOneDocument(
	ctx context.Context,
	cascade services.DeliveryCascade,
	recordRepo ports.DeliveryRecordRepository,
	s *shipment.Shipment,
	document *shipment.Document,
	details shipment.DeliveryDetails,
) error {
	// the flip must be known to succeed before the record is written, or a
	// rejected transition would leave an orphaned ledger record behind
	if _, err := document.Status().Deliver(); err != nil {
		return err
	}

	records, err := cascade.RecordsForDocuments(s, []*shipment.Document{document}, details)
	if err != nil {
		return err
	}

	if err = recordRepo.Add(ctx, records[0]); err != nil &&
		!errors.Is(err, deliveryrecord.ErrMinuteNumberTaken) {
		return err
	}

	return s.DeliverDocument(document.ID(), details)
}

// finalizeShipment commits a whole-shipment delivery. For document-less
// shipments it writes the single ledger record and moves the shipment to its
// final state. For shipments with documents it cascades over the selection
// (an empty selection means every document) and then re-derives the shipment
// status, so a partial selection leaves the shipment partially delivered.
//
// Returns the number of ledger records created. A *PartialCascadeError is
// returned when a document cascade stopped early; the shipment still carries
// the flips that did succeed and should be persisted by the caller.
func finalizeShipment(
	ctx context.Context,
	cascade services.DeliveryCascade,
	recordRepo ports.DeliveryRecordRepository,
	s *shipment.Shipment,
	selected []*shipment.Document,
	details shipment.DeliveryDetails,
	now time.Time,
) (int, error) {
	if _, err := s.Status().Finalize(); err != nil {
		return 0, err
	}
	if s.Status() == shipment.DeliveredFinal && !s.HasDocuments() {
		// re-finalizing is a no-op, not another ledger record
		return 0, nil
	}

	if !s.HasDocuments() {
		record, err := cascade.RecordForShipment(s, details, now)
		if err != nil {
			return 0, err
		}
		if err = recordRepo.Add(ctx, record); err != nil &&
			!errors.Is(err, deliveryrecord.ErrMinuteNumberTaken) {
			return 0, err
		}
		if err = s.Finalize(details); err != nil {
			return 0, err
		}
		return 1, nil
	}

	if len(selected) == 0 {
		selected = s.Documents()
	}

	recordsCreated, cascadeErr := deliverSelectedDocuments(ctx, cascade, recordRepo, s, selected, details)
	if cascadeErr != nil {
		return recordsCreated, cascadeErr
	}

	return recordsCreated, s.Finalize(details)
}

func remainingDocumentIDs(documents []*shipment.Document) []string {
	ids := make([]string, 0, len(documents))
	for _, document := range documents {
		if document.IsDelivered() {
			continue
		}
		ids = append(ids, document.ID().String())
	}
	return ids
}
