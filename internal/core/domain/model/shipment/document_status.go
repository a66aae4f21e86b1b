package shipment

import (
	"fmt"

	"freightops/internal/pkg/errs"
)

// DocumentStatus represents the lifecycle state of a single document within a
// shipment. Exactly one state holds at a time; the retained / picked-up /
// delivered views exposed by Document are derived from it at read time.
//
// State transitions:
//
//	Pending <──> DocumentRetained
//	    │
//	    ├──> PickedUp
//	    └──> DocumentDelivered (terminal)
//
// PickedUp and DocumentDelivered are kept as distinct states: the business
// has not settled whether picking up and delivering are one real-world event
// or a two-step receiving process, so neither is folded into the other.
type DocumentStatus int

const (
	// DocumentStatusUnknown represents an invalid or undefined status.
	DocumentStatusUnknown DocumentStatus = iota

	// Pending is the initial status of a document.
	Pending

	// DocumentRetained indicates the document is blocked by a fiscal hold.
	DocumentRetained

	// PickedUp indicates the document was collected by the client.
	PickedUp

	// DocumentDelivered indicates the document reached its receiver.
	// This is terminal for the document.
	DocumentDelivered
)

func getDocumentStatusStrings() map[DocumentStatus]string {
	return map[DocumentStatus]string{
		DocumentStatusUnknown: "Unknown",
		Pending:               "Pending",
		DocumentRetained:      "Retained",
		PickedUp:              "PickedUp",
		DocumentDelivered:     "Delivered",
	}
}

// DocumentStatusFromString parses the wire representation of a document
// status.
func DocumentStatusFromString(raw string) (DocumentStatus, error) {
	for status, str := range getDocumentStatusStrings() {
		if status != DocumentStatusUnknown && str == raw {
			return status, nil
		}
	}
	return DocumentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"document status is invalid",
		fmt.Errorf("%q is not a valid document status", raw),
	)
}

// Validate checks if the DocumentStatus value is valid.
func (s DocumentStatus) Validate() error {
	if s == DocumentStatusUnknown || s > DocumentDelivered || s < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"document status is invalid",
			fmt.Errorf("%d is not a valid document status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the status.
func (s DocumentStatus) String() string {
	if str, ok := getDocumentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Retain transitions the status to DocumentRetained.
//
// Valid transitions:
//   - Pending -> DocumentRetained
//   - DocumentRetained -> DocumentRetained (re-request is a no-op)
func (s DocumentStatus) Retain() (DocumentStatus, error) {
	if s != Pending && s != DocumentRetained {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"document status is invalid",
			fmt.Errorf("%s is not a valid status to retain", s.String()),
		)
	}
	return DocumentRetained, nil
}

// Release transitions the status back to Pending after a fiscal hold.
//
// Valid transitions:
//   - DocumentRetained -> Pending
//   - Pending -> Pending (re-request is a no-op)
func (s DocumentStatus) Release() (DocumentStatus, error) {
	if s != DocumentRetained && s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"document status is invalid",
			fmt.Errorf("%s is not a valid status to release", s.String()),
		)
	}
	return Pending, nil
}

// PickUp transitions the status to PickedUp.
//
// Valid transitions:
//   - Pending -> PickedUp
//   - PickedUp -> PickedUp (re-request is a no-op)
//
// A retained document cannot be picked up until the hold is cleared.
func (s DocumentStatus) PickUp() (DocumentStatus, error) {
	if s != Pending && s != PickedUp {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"document status is invalid",
			fmt.Errorf("%s is not a valid status to pick up", s.String()),
		)
	}
	return PickedUp, nil
}

// Deliver transitions the status to DocumentDelivered.
//
// Valid transitions:
//   - Pending -> DocumentDelivered
//   - DocumentDelivered -> DocumentDelivered (re-request is a no-op)
//
// Retained documents must be released first; picked-up documents stay
// picked up until the business clarifies the receiving flow.
func (s DocumentStatus) Deliver() (DocumentStatus, error) {
	if s != Pending && s != DocumentDelivered {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"document status is invalid",
			fmt.Errorf("%s is not a valid status to deliver", s.String()),
		)
	}
	return DocumentDelivered, nil
}
