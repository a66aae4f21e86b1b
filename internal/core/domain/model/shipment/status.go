package shipment

import (
	"fmt"

	"freightops/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
// It implements a state machine with guarded transitions so shipments follow
// the correct operational workflow.
//
// State transitions:
//
//	InTransit <──> Retained
//	    │
//	    ├──> Delivered ──────────┐
//	    │                        ├──> DeliveredFinal
//	    └──> PartiallyDelivered ─┘
//
// Delivered means the shipment was picked up but receipt is not yet final.
// PartiallyDelivered and DeliveredFinal are normally reached through document
// derivation rather than a direct request; derivation only ever pulls the
// status forward, never back into Retained.
//
// DeliveredFinal is terminal for active-list purposes (excluded from default
// views) but the shipment itself stays editable.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// InTransit is the initial status of a registered shipment.
	InTransit

	// Retained indicates the shipment is blocked by a fiscal hold.
	// Entry requires a fiscal action record; clearing it reverts to InTransit.
	Retained

	// Delivered indicates the shipment was picked up but not finalized.
	Delivered

	// PartiallyDelivered indicates some but not all documents are delivered.
	PartiallyDelivered

	// DeliveredFinal indicates every document (or the whole shipment) reached
	// its receiver. Shipments in this status are excluded from active views.
	DeliveredFinal
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:      "Unknown",
		InTransit:          "InTransit",
		Retained:           "Retained",
		Delivered:          "Delivered",
		PartiallyDelivered: "PartiallyDelivered",
		DeliveredFinal:     "DeliveredFinal",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		InTransit:          "InTransit",
		Retained:           "Retained",
		Delivered:          "Delivered",
		PartiallyDelivered: "PartiallyDelivered",
		DeliveredFinal:     "DeliveredFinal",
	}
}

// StatusFromString parses the wire representation of a shipment status.
func StatusFromString(raw string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == raw {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", raw),
	)
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsActive reports whether the shipment should appear in default views.
// DeliveredFinal shipments are excluded.
func (s Status) IsActive() bool {
	return s != DeliveredFinal && s != StatusUnknown
}

// IsRetained reports whether the status represents a fiscal hold.
// This is the single source of truth for the retained view of a shipment;
// no separate boolean is stored.
func (s Status) IsRetained() bool {
	return s == Retained
}

// Retain transitions the status to Retained.
//
// Valid transitions:
//   - InTransit -> Retained
//   - Retained -> Retained (re-request is a no-op)
//
// Returns (0, error) if the shipment has already moved past transit.
func (s Status) Retain() (Status, error) {
	if s != InTransit && s != Retained {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to retain", s.String()),
		)
	}
	return Retained, nil
}

// Release transitions the status back to InTransit after a fiscal hold.
//
// Valid transitions:
//   - Retained -> InTransit
//   - InTransit -> InTransit (re-request is a no-op)
func (s Status) Release() (Status, error) {
	if s != Retained && s != InTransit {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to release", s.String()),
		)
	}
	return InTransit, nil
}

// PickUp transitions the status to Delivered (picked up, not final).
//
// Valid transitions:
//   - InTransit -> Delivered
//   - Delivered -> Delivered (re-request is a no-op)
//
// A retained shipment cannot be picked up until the hold is cleared.
func (s Status) PickUp() (Status, error) {
	if s != InTransit && s != Delivered {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to pick up", s.String()),
		)
	}
	return Delivered, nil
}

// Finalize transitions the status to DeliveredFinal.
//
// Valid transitions:
//   - InTransit -> DeliveredFinal (document-less whole-shipment finalize)
//   - Delivered -> DeliveredFinal
//   - PartiallyDelivered -> DeliveredFinal
//   - DeliveredFinal -> DeliveredFinal (re-request is a no-op)
//
// A retained shipment cannot be finalized until the hold is cleared.
func (s Status) Finalize() (Status, error) {
	if s == Retained || s == StatusUnknown {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to finalize", s.String()),
		)
	}
	return DeliveredFinal, nil
}

// DeriveFromDocuments computes the displayed status from document delivery
// counts. All delivered yields DeliveredFinal, some delivered yields
// PartiallyDelivered, and none delivered keeps the current manual status:
// derivation only pulls the status forward, never backward into Retained.
//
// Callers must only invoke this when the shipment tracks documents
// individually (total > 0).
func (s Status) DeriveFromDocuments(delivered, total int) Status {
	if total <= 0 {
		return s
	}
	switch {
	case delivered == total:
		return DeliveredFinal
	case delivered > 0:
		return PartiallyDelivered
	default:
		return s
	}
}
