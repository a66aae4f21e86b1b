// Package shipment contains the shipment aggregate and its document entities,
// the core of the status and retention workflow.
//
// A Shipment is the aggregate root; Documents are its individually tracked
// sub-units. Both carry a single status enum as the only source of truth for
// their lifecycle: the retained / picked-up / delivered views are derived at
// read time and can never disagree with the status.
//
// Entry into a retained state always carries a FiscalAction record and
// leaving it always removes the record, so a hold and its fiscal data move
// together. Delivery details are captured as an immutable value object when
// a delivery is committed.
//
// When a shipment has documents, its displayed status is derived from the
// documents after every document mutation; manual status requests only apply
// to shipments without per-document tracking.
package shipment
