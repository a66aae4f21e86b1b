package shipment

import (
	"errors"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/errs"
	"freightops/internal/pkg/guard"
)

var (
	// ErrTrackingNumberIsRequired is returned when creating a shipment without
	// a tracking number.
	ErrTrackingNumberIsRequired = errs.NewValueIsRequiredError("trackingNumber")

	// ErrCarrierNameIsRequired is returned when creating a shipment without a carrier.
	ErrCarrierNameIsRequired = errs.NewValueIsRequiredError("carrierName")

	// ErrShipmentIsNotConstructed is returned when using an improperly
	// initialized Shipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

	// ErrShipmentIsRetained is returned when an operation is blocked by an
	// active fiscal hold on the shipment or on one of its documents.
	ErrShipmentIsRetained = errors.New("shipment is retained, clear the retention first")

	// ErrDocumentNotFound is returned when a referenced document does not
	// belong to the shipment. It unwraps to errs.ErrObjectNotFound so callers
	// treat a stale document id like any other missing object.
	ErrDocumentNotFound = errs.NewObjectNotFoundError("documentID", "document is not part of the shipment")
)

// Shipment represents one freight consignment moving through the system.
// It is the aggregate root that manages the shipment lifecycle and the
// lifecycle of its documents.
//
// Shipment follows these invariants:
//   - Must have a valid unique identifier, client, tracking number and carrier
//   - Packages and weight must not be negative
//   - The retained view is derived from the status enum; no separate boolean
//     is stored, so the two can never disagree
//   - When documents exist, the displayed status is derived from their
//     delivery state after every document mutation; derivation only pulls the
//     status forward, never backward into Retained
//   - A fiscal hold record exists exactly while the owning entity is retained
//
// Retention exists in two shapes for historical reasons: a shipment-level
// hold and per-document holds. Both use the same FiscalAction record, are
// populated and cleared by different operations, and are never written in
// tandem: whichever entity is the unit of retention owns its record.
type Shipment struct {
	// id uniquely identifies the shipment
	id kernel.UUID
	// clientID identifies the owning client, used to scope delivery records
	clientID kernel.UUID
	// trackingNumber is the carrier tracking reference
	trackingNumber string
	// carrierName is the freight carrier
	carrierName string
	// transportMode is how the shipment travels
	transportMode TransportMode
	// packages is the total package count
	packages int
	// weight is the total weight in kilograms
	weight float64
	// arrivalDate is when the shipment arrived or is due, nil if unknown
	arrivalDate *time.Time
	// arrivalFlight is the inbound flight for air shipments
	arrivalFlight string
	// status is the single source of truth for the shipment lifecycle
	status Status
	// documents are the individually tracked sub-units, possibly empty
	documents []*Document
	// fiscalAction is the shipment-level hold record, set only while retained
	fiscalAction *FiscalAction
	// delivery is the captured receiver info, set once finalized
	delivery *DeliveryDetails

	guard guard.ConstructorGuard
}

// NewShipment creates a shipment in InTransit status with no documents.
// Documents are attached afterwards via AddDocument.
func NewShipment(
	id kernel.UUID,
	clientID kernel.UUID,
	trackingNumber string,
	carrierName string,
	transportMode TransportMode,
	packages int,
	weight float64,
) (*Shipment, error) {
	s := &Shipment{
		status: InTransit,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setClientID(clientID),
		s.setTrackingNumber(trackingNumber),
		s.setCarrierName(carrierName),
		s.setTransportMode(transportMode),
		s.setPackages(packages),
		s.setWeight(weight),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment reconstructs a shipment aggregate from persistent storage,
// including its documents, an active shipment-level hold and captured
// delivery details.
func RestoreShipment(
	id kernel.UUID,
	clientID kernel.UUID,
	trackingNumber string,
	carrierName string,
	transportMode TransportMode,
	packages int,
	weight float64,
	arrivalDate *time.Time,
	arrivalFlight string,
	status Status,
	documents []*Document,
	fiscalAction *FiscalAction,
	delivery *DeliveryDetails,
) (*Shipment, error) {
	s := &Shipment{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setClientID(clientID),
		s.setTrackingNumber(trackingNumber),
		s.setCarrierName(carrierName),
		s.setTransportMode(transportMode),
		s.setPackages(packages),
		s.setWeight(weight),
		s.setStatus(status),
		s.setDocuments(documents),
	); err != nil {
		return nil, err
	}

	if fiscalAction != nil {
		if err := fiscalAction.Validate(); err != nil {
			return nil, err
		}
		actionCopy := *fiscalAction
		s.fiscalAction = &actionCopy
	}
	if delivery != nil {
		if err := delivery.Validate(); err != nil {
			return nil, err
		}
		deliveryCopy := *delivery
		s.delivery = &deliveryCopy
	}

	s.arrivalDate = arrivalDate
	s.arrivalFlight = arrivalFlight
	return s, nil
}

// Validate checks if the Shipment was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// ClientID returns the owning client's identifier.
func (s *Shipment) ClientID() kernel.UUID {
	return s.clientID
}

// TrackingNumber returns the carrier tracking reference.
func (s *Shipment) TrackingNumber() string {
	return s.trackingNumber
}

// CarrierName returns the freight carrier.
func (s *Shipment) CarrierName() string {
	return s.carrierName
}

// TransportMode returns how the shipment travels.
func (s *Shipment) TransportMode() TransportMode {
	return s.transportMode
}

// Packages returns the total package count.
func (s *Shipment) Packages() int {
	return s.packages
}

// Weight returns the total weight in kilograms.
func (s *Shipment) Weight() float64 {
	return s.weight
}

// ArrivalDate returns when the shipment arrived or is due, nil if unknown.
func (s *Shipment) ArrivalDate() *time.Time {
	return s.arrivalDate
}

// ArrivalFlight returns the inbound flight for air shipments, empty otherwise.
func (s *Shipment) ArrivalFlight() string {
	return s.arrivalFlight
}

// SetArrivalInfo records the arrival date and, for air shipments, the flight.
func (s *Shipment) SetArrivalInfo(arrivalDate time.Time, arrivalFlight string) {
	dateCopy := arrivalDate
	s.arrivalDate = &dateCopy
	s.arrivalFlight = arrivalFlight
}

// Status returns the current lifecycle state of the shipment.
func (s *Shipment) Status() Status {
	return s.status
}

// IsRetained reports whether the shipment is under a shipment-level fiscal
// hold. Derived from the status, never stored separately.
func (s *Shipment) IsRetained() bool {
	return s.status.IsRetained()
}

// HasDocuments reports whether the shipment tracks documents individually.
func (s *Shipment) HasDocuments() bool {
	return len(s.documents) > 0
}

// Documents returns the shipment's documents in order.
// The returned slice is a copy to prevent external modification.
func (s *Shipment) Documents() []*Document {
	out := make([]*Document, len(s.documents))
	copy(out, s.documents)
	return out
}

// Document finds a document of this shipment by its identifier.
// Returns ErrDocumentNotFound if the document does not belong to the shipment.
func (s *Shipment) Document(documentID kernel.UUID) (*Document, error) {
	if err := documentID.Validate(); err != nil {
		return nil, err
	}

	for _, document := range s.documents {
		if document.ID().IsEqual(documentID) {
			return document, nil
		}
	}
	return nil, ErrDocumentNotFound
}

// AddDocument creates a new pending document and attaches it to the shipment.
func (s *Shipment) AddDocument(
	name string,
	minuteNumber string,
	invoiceNumbers []string,
	packages int,
	weight float64,
	notes string,
	priority bool,
) (*Document, error) {
	document, err := NewDocument(kernel.NewUUID(), name, minuteNumber, invoiceNumbers,
		packages, weight, notes, priority)
	if err != nil {
		return nil, err
	}

	s.documents = append(s.documents, document)
	return document, nil
}

// FiscalAction returns the shipment-level hold record, nil when not retained.
func (s *Shipment) FiscalAction() *FiscalAction {
	if s.fiscalAction == nil {
		return nil
	}
	actionCopy := *s.fiscalAction
	return &actionCopy
}

// Delivery returns the captured receiver info, nil until finalized.
func (s *Shipment) Delivery() *DeliveryDetails {
	if s.delivery == nil {
		return nil
	}
	deliveryCopy := *s.delivery
	return &deliveryCopy
}

// Retain places the whole shipment under a fiscal hold. Re-retaining an
// already retained shipment replaces the hold record, which is how an
// existing retention is edited. The hold record is attached in the same
// operation as the status change so the two can never diverge.
func (s *Shipment) Retain(action FiscalAction) error {
	if err := action.Validate(); err != nil {
		return err
	}

	newStatus, err := s.status.Retain()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.fiscalAction = &action
	return nil
}

// ReleaseRetention clears the shipment-level fiscal hold and returns the
// shipment to InTransit. Releasing a shipment that is not retained is a no-op.
func (s *Shipment) ReleaseRetention() error {
	newStatus, err := s.status.Release()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.fiscalAction = nil
	return nil
}

// PickUp marks the shipment as picked up (Delivered, not final). Only
// meaningful for the manual flow: shipments with individually tracked
// documents reach their delivery states through document derivation.
func (s *Shipment) PickUp() error {
	newStatus, err := s.status.PickUp()
	if err != nil {
		return err
	}

	s.status = newStatus
	return nil
}

// Finalize marks the whole shipment as delivered and stores the captured
// receiver details. For shipments with documents the status is re-derived
// from the documents instead of forced, so a partially delivered shipment
// stays partially delivered even when finalize was requested for all of it.
func (s *Shipment) Finalize(details DeliveryDetails) error {
	if err := details.Validate(); err != nil {
		return err
	}

	if s.HasDocuments() {
		s.delivery = &details
		s.RecalculateStatus()
		return nil
	}

	newStatus, err := s.status.Finalize()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.delivery = &details
	return nil
}

// RetainDocument places one document under a fiscal hold.
func (s *Shipment) RetainDocument(documentID kernel.UUID, action FiscalAction) error {
	document, err := s.Document(documentID)
	if err != nil {
		return err
	}
	if err = document.Retain(action); err != nil {
		return err
	}

	s.RecalculateStatus()
	return nil
}

// ReleaseDocumentRetention clears the fiscal hold on one document.
func (s *Shipment) ReleaseDocumentRetention(documentID kernel.UUID) error {
	document, err := s.Document(documentID)
	if err != nil {
		return err
	}
	if err = document.ReleaseRetention(); err != nil {
		return err
	}

	s.RecalculateStatus()
	return nil
}

// PickUpDocument marks one document as collected by the client.
func (s *Shipment) PickUpDocument(documentID kernel.UUID) error {
	document, err := s.Document(documentID)
	if err != nil {
		return err
	}
	if err = document.PickUp(); err != nil {
		return err
	}

	s.RecalculateStatus()
	return nil
}

// DeliverDocument marks one document as delivered with the captured receiver
// details and re-derives the shipment status from its documents.
func (s *Shipment) DeliverDocument(documentID kernel.UUID, details DeliveryDetails) error {
	document, err := s.Document(documentID)
	if err != nil {
		return err
	}
	if err = document.Deliver(details); err != nil {
		return err
	}

	s.RecalculateStatus()
	return nil
}

// CaptureDeliveryDetails stores the receiver details gathered while
// completing delivery on the shipment's documents.
func (s *Shipment) CaptureDeliveryDetails(details DeliveryDetails) error {
	if err := details.Validate(); err != nil {
		return err
	}
	s.delivery = &details
	return nil
}

// RecalculateStatus re-derives the displayed status from the documents'
// delivery state. Shipments without documents keep their manual status.
func (s *Shipment) RecalculateStatus() {
	if !s.HasDocuments() {
		return
	}

	delivered := 0
	for _, document := range s.documents {
		if document.IsDelivered() {
			delivered++
		}
	}

	s.status = s.status.DeriveFromDocuments(delivered, len(s.documents))
}

// CanDelete reports whether the shipment may be destructively removed.
// Deletion is refused while the shipment or any of its documents is under a
// fiscal hold: the hold must be cleared first.
func (s *Shipment) CanDelete() error {
	if s.IsRetained() {
		return ErrShipmentIsRetained
	}
	for _, document := range s.documents {
		if document.IsRetained() {
			return ErrDocumentIsRetained
		}
	}
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	s.clientID = clientID
	return nil
}

func (s *Shipment) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return ErrTrackingNumberIsRequired
	}
	s.trackingNumber = trackingNumber
	return nil
}

func (s *Shipment) setCarrierName(carrierName string) error {
	if carrierName == "" {
		return ErrCarrierNameIsRequired
	}
	s.carrierName = carrierName
	return nil
}

func (s *Shipment) setTransportMode(transportMode TransportMode) error {
	if err := transportMode.Validate(); err != nil {
		return err
	}
	s.transportMode = transportMode
	return nil
}

func (s *Shipment) setPackages(packages int) error {
	if packages < 0 {
		return errs.NewValueIsInvalidErrorWithCause("packages is invalid",
			errors.New("packages must not be negative"))
	}
	s.packages = packages
	return nil
}

func (s *Shipment) setWeight(weight float64) error {
	if weight < 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight is invalid",
			errors.New("weight must not be negative"))
	}
	s.weight = weight
	return nil
}

func (s *Shipment) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

func (s *Shipment) setDocuments(documents []*Document) error {
	for _, document := range documents {
		if err := document.Validate(); err != nil {
			return err
		}
	}

	s.documents = make([]*Document, len(documents))
	copy(s.documents, documents)
	return nil
}
