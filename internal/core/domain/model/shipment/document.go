package shipment

import (
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/errs"
	"freightops/internal/pkg/guard"
)

var (
	// ErrDocumentNameIsRequired is returned when creating a document without a name.
	ErrDocumentNameIsRequired = errs.NewValueIsRequiredError("document name")

	// ErrDocumentIsNotConstructed indicates the Document was not created via
	// NewDocument or RestoreDocument.
	ErrDocumentIsNotConstructed = errors.New("Document must be created via NewDocument constructor")

	// ErrDocumentIsRetained is returned when an operation is blocked by an
	// active fiscal hold on the document.
	ErrDocumentIsRetained = errors.New("document is retained, clear the retention first")
)

// Document is a sub-unit of a shipment, typically one invoice/bill bundle,
// tracked individually through its own lifecycle.
//
// A document holds exactly one DocumentStatus at a time; the retained,
// picked-up and delivered views are derived from it, so at most one of them
// is ever true. Any transition away from DocumentRetained clears the
// retention record; committing a delivery stores the captured receiver
// details on the document.
//
// Packages and weight are optional: zero means "use the shipment's totals"
// when a delivery record is synthesized for this document.
type Document struct {
	// id uniquely identifies the document
	id kernel.UUID
	// name is the human-readable label of the bundle
	name string
	// minuteNumber is an optional human tracking code
	minuteNumber string
	// invoiceNumbers lists the invoices covered by this document
	invoiceNumbers []string
	// packages is the package count, 0 to fall back to the shipment's
	packages int
	// weight is in kilograms, 0 to fall back to the shipment's
	weight float64
	// notes carries free-text remarks
	notes string
	// priority is an orthogonal display flag with no workflow effect
	priority bool
	// status is the single source of truth for the document lifecycle
	status DocumentStatus
	// retention is the fiscal hold record, set only while retained
	retention *FiscalAction
	// delivery is the captured receiver info, set once delivered
	delivery *DeliveryDetails

	guard guard.ConstructorGuard
}

// NewDocument creates a document in Pending status.
// The name is mandatory; packages and weight must not be negative.
func NewDocument(
	id kernel.UUID,
	name string,
	minuteNumber string,
	invoiceNumbers []string,
	packages int,
	weight float64,
	notes string,
	priority bool,
) (*Document, error) {
	document := &Document{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		document.setID(id),
		document.setName(name),
		document.setPackages(packages),
		document.setWeight(weight),
	); err != nil {
		return nil, err
	}

	document.minuteNumber = minuteNumber
	document.invoiceNumbers = append([]string(nil), invoiceNumbers...)
	document.notes = notes
	document.priority = priority
	return document, nil
}

// RestoreDocument reconstructs a document from persistent storage with its
// full lifecycle state, including an active retention record or captured
// delivery details.
func RestoreDocument(
	id kernel.UUID,
	name string,
	minuteNumber string,
	invoiceNumbers []string,
	packages int,
	weight float64,
	notes string,
	priority bool,
	status DocumentStatus,
	retention *FiscalAction,
	delivery *DeliveryDetails,
) (*Document, error) {
	document := &Document{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		document.setID(id),
		document.setName(name),
		document.setPackages(packages),
		document.setWeight(weight),
		document.setStatus(status),
	); err != nil {
		return nil, err
	}

	if retention != nil {
		if err := retention.Validate(); err != nil {
			return nil, err
		}
		retentionCopy := *retention
		document.retention = &retentionCopy
	}
	if delivery != nil {
		if err := delivery.Validate(); err != nil {
			return nil, err
		}
		deliveryCopy := *delivery
		document.delivery = &deliveryCopy
	}

	document.minuteNumber = minuteNumber
	document.invoiceNumbers = append([]string(nil), invoiceNumbers...)
	document.notes = notes
	document.priority = priority
	return document, nil
}

// Validate checks if the Document was properly constructed.
func (d *Document) Validate() error {
	if d == nil {
		return ErrDocumentIsNotConstructed
	}
	return d.guard.Validate(ErrDocumentIsNotConstructed)
}

// IsEqual compares two documents by their unique identifiers.
func (d *Document) IsEqual(other *Document) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the document's unique identifier.
func (d *Document) ID() kernel.UUID {
	return d.id
}

// Name returns the human-readable label of the bundle.
func (d *Document) Name() string {
	return d.name
}

// MinuteNumber returns the optional human tracking code, empty if unset.
func (d *Document) MinuteNumber() string {
	return d.minuteNumber
}

// InvoiceNumbers returns the invoices covered by this document.
// The returned slice is a copy to prevent external modification.
func (d *Document) InvoiceNumbers() []string {
	return append([]string(nil), d.invoiceNumbers...)
}

// Packages returns the package count, 0 meaning "use the shipment's".
func (d *Document) Packages() int {
	return d.packages
}

// Weight returns the weight in kilograms, 0 meaning "use the shipment's".
func (d *Document) Weight() float64 {
	return d.weight
}

// Notes returns free-text remarks attached to the document.
func (d *Document) Notes() string {
	return d.notes
}

// IsPriority reports the orthogonal display-priority flag.
func (d *Document) IsPriority() bool {
	return d.priority
}

// SetPriority flips the display-priority flag. It has no workflow effect.
func (d *Document) SetPriority(priority bool) {
	d.priority = priority
}

// Status returns the current lifecycle state of the document.
func (d *Document) Status() DocumentStatus {
	return d.status
}

// IsRetained reports whether the document is under a fiscal hold.
// Derived from the status, never stored separately.
func (d *Document) IsRetained() bool {
	return d.status == DocumentRetained
}

// IsPickedUp reports whether the document was collected by the client.
func (d *Document) IsPickedUp() bool {
	return d.status == PickedUp
}

// IsDelivered reports whether the document reached its receiver.
func (d *Document) IsDelivered() bool {
	return d.status == DocumentDelivered
}

// Retention returns the active fiscal hold record, nil when not retained.
func (d *Document) Retention() *FiscalAction {
	if d.retention == nil {
		return nil
	}
	retentionCopy := *d.retention
	return &retentionCopy
}

// Delivery returns the captured receiver info, nil until delivered.
func (d *Document) Delivery() *DeliveryDetails {
	if d.delivery == nil {
		return nil
	}
	deliveryCopy := *d.delivery
	return &deliveryCopy
}

// Retain places the document under a fiscal hold. Re-retaining an already
// retained document replaces the hold record, which is how an existing
// retention is edited.
func (d *Document) Retain(action FiscalAction) error {
	if err := action.Validate(); err != nil {
		return err
	}

	newStatus, err := d.status.Retain()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.retention = &action
	return nil
}

// ReleaseRetention clears the fiscal hold and returns the document to
// Pending. Releasing a document that is not retained is a no-op.
func (d *Document) ReleaseRetention() error {
	newStatus, err := d.status.Release()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.retention = nil
	return nil
}

// PickUp marks the document as collected by the client.
// Any retention record would have blocked the transition already, but the
// record is cleared regardless so no stale hold survives a state change.
func (d *Document) PickUp() error {
	newStatus, err := d.status.PickUp()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.retention = nil
	return nil
}

// Deliver marks the document as delivered and stores the captured receiver
// details. Re-delivering an already delivered document is a no-op that keeps
// the originally captured details.
func (d *Document) Deliver(details DeliveryDetails) error {
	if err := details.Validate(); err != nil {
		return err
	}

	if d.status == DocumentDelivered {
		return nil
	}

	newStatus, err := d.status.Deliver()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.retention = nil
	d.delivery = &details
	return nil
}

func (d *Document) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Document) setName(name string) error {
	if name == "" {
		return ErrDocumentNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Document) setPackages(packages int) error {
	if packages < 0 {
		return errs.NewValueIsInvalidErrorWithCause("packages is invalid",
			errors.New("packages must not be negative"))
	}
	d.packages = packages
	return nil
}

func (d *Document) setWeight(weight float64) error {
	if weight < 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight is invalid",
			errors.New("weight must not be negative"))
	}
	d.weight = weight
	return nil
}

func (d *Document) setStatus(status DocumentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}
