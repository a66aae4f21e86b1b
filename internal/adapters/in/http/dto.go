package http

import (
	"time"

	"freightops/internal/core/application/usecases/commands"
	"freightops/internal/core/application/usecases/queries"
	"freightops/internal/core/domain/model/shipment"
)

const dateLayout = "2006-01-02"

// Error is the standard error payload.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PartialCascadeError is the payload returned when a delivery cascade stops
// partway. The records already written and the documents still pending are
// both reported so the caller can retry.
type PartialCascadeError struct {
	Code              int      `json:"code"`
	Message           string   `json:"message"`
	RecordsCreated    int      `json:"records_created"`
	FailedDocumentIDs []string `json:"failed_document_ids"`
}

// NewShipment is the request body for registering a shipment.
type NewShipment struct {
	ClientID       string        `json:"client_id"`
	TrackingNumber string        `json:"tracking_number"`
	CarrierName    string        `json:"carrier_name"`
	TransportMode  string        `json:"transport_mode"`
	Packages       int           `json:"packages"`
	Weight         float64       `json:"weight"`
	ArrivalDate    string        `json:"arrival_date,omitempty"`
	ArrivalFlight  string        `json:"arrival_flight,omitempty"`
	Documents      []NewDocument `json:"documents,omitempty"`
}

// NewDocument is one document of a shipment registration.
type NewDocument struct {
	Name           string   `json:"name"`
	MinuteNumber   string   `json:"minute_number,omitempty"`
	InvoiceNumbers []string `json:"invoice_numbers,omitempty"`
	Packages       int      `json:"packages,omitempty"`
	Weight         float64  `json:"weight,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	Priority       bool     `json:"priority,omitempty"`
}

// StatusChange is the request body for shipment and document status
// transitions. Retention is required when the target status is Retained,
// Delivery when the target is a delivering status.
type StatusChange struct {
	Status    string     `json:"status"`
	Retention *Retention `json:"retention,omitempty"`
	Delivery  *Delivery  `json:"delivery,omitempty"`
}

// Retention carries the fiscal hold fields of a retention request.
type Retention struct {
	ActionNumber string `json:"action_number,omitempty"`
	Reason       string `json:"reason"`
	Amount       string `json:"amount,omitempty"`
	PaymentDate  string `json:"payment_date,omitempty"`
	ReleaseDate  string `json:"release_date,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// Delivery carries the receiver fields of a delivery request.
type Delivery struct {
	ReceiverName string `json:"receiver_name"`
	DeliveryDate string `json:"delivery_date"`
	DeliveryTime string `json:"delivery_time"`
}

// FinalizeDelivery is the request body for closing out a shipment. An empty
// document id list means the whole shipment.
type FinalizeDelivery struct {
	DocumentIDs []string `json:"document_ids,omitempty"`
	Delivery    Delivery `json:"delivery"`
}

// FinalizeDeliveryResponse reports the finalize outcome.
type FinalizeDeliveryResponse struct {
	Shipment       Shipment `json:"shipment"`
	RecordsCreated int      `json:"records_created"`
}

// Shipment is the response shape of one shipment with its documents.
type Shipment struct {
	ID              string     `json:"id"`
	ClientID        string     `json:"client_id"`
	TrackingNumber  string     `json:"tracking_number"`
	CarrierName     string     `json:"carrier_name"`
	TransportMode   string     `json:"transport_mode"`
	Packages        int        `json:"packages"`
	Weight          float64    `json:"weight"`
	ArrivalDate     string     `json:"arrival_date,omitempty"`
	ArrivalFlight   string     `json:"arrival_flight,omitempty"`
	Status          string     `json:"status"`
	Retained        bool       `json:"retained"`
	RetentionReason string     `json:"retention_reason,omitempty"`
	RetentionAmount string     `json:"retention_amount,omitempty"`
	ReceiverName    string     `json:"receiver_name,omitempty"`
	DeliveryDate    string     `json:"delivery_date,omitempty"`
	DeliveryTime    string     `json:"delivery_time,omitempty"`
	Documents       []Document `json:"documents"`
}

// Document is the response shape of one document of a shipment.
type Document struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	MinuteNumber    string  `json:"minute_number,omitempty"`
	Packages        int     `json:"packages,omitempty"`
	Weight          float64 `json:"weight,omitempty"`
	Priority        bool    `json:"priority"`
	Status          string  `json:"status"`
	Retained        bool    `json:"retained"`
	RetentionReason string  `json:"retention_reason,omitempty"`
}

// ActiveShipment is one row of the active shipment list.
type ActiveShipment struct {
	ID                 string `json:"id"`
	TrackingNumber     string `json:"tracking_number"`
	CarrierName        string `json:"carrier_name"`
	TransportMode      string `json:"transport_mode"`
	Status             string `json:"status"`
	Retained           bool   `json:"retained"`
	TotalDocuments     int    `json:"total_documents"`
	DeliveredDocuments int    `json:"delivered_documents"`
}

// DeliveryRecord is one entry of a client's delivery ledger.
type DeliveryRecord struct {
	ID           string  `json:"id"`
	MinuteNumber string  `json:"minute_number"`
	Receiver     string  `json:"receiver"`
	DeliveryDate string  `json:"delivery_date"`
	DeliveryTime string  `json:"delivery_time"`
	Weight       float64 `json:"weight"`
	Packages     int     `json:"packages"`
	Notes        string  `json:"notes,omitempty"`
}

func (r Retention) toInput() (commands.RetentionInput, error) {
	input := commands.RetentionInput{
		ActionNumber: r.ActionNumber,
		Reason:       r.Reason,
		Amount:       r.Amount,
		Notes:        r.Notes,
	}

	paymentDate, err := parseOptionalDate(r.PaymentDate)
	if err != nil {
		return commands.RetentionInput{}, err
	}
	input.PaymentDate = paymentDate

	releaseDate, err := parseOptionalDate(r.ReleaseDate)
	if err != nil {
		return commands.RetentionInput{}, err
	}
	input.ReleaseDate = releaseDate

	return input, nil
}

func (d Delivery) toInput() commands.DeliveryInput {
	return commands.DeliveryInput{
		ReceiverName: d.ReceiverName,
		DeliveryDate: d.DeliveryDate,
		DeliveryTime: d.DeliveryTime,
	}
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func shipmentFromAggregate(aggregate *shipment.Shipment) Shipment {
	response := Shipment{
		ID:             aggregate.ID().String(),
		ClientID:       aggregate.ClientID().String(),
		TrackingNumber: aggregate.TrackingNumber(),
		CarrierName:    aggregate.CarrierName(),
		TransportMode:  aggregate.TransportMode().String(),
		Packages:       aggregate.Packages(),
		Weight:         aggregate.Weight(),
		ArrivalFlight:  aggregate.ArrivalFlight(),
		Status:         aggregate.Status().String(),
		Retained:       aggregate.Status().IsRetained(),
		Documents:      make([]Document, 0, len(aggregate.Documents())),
	}

	if aggregate.ArrivalDate() != nil {
		response.ArrivalDate = aggregate.ArrivalDate().Format(dateLayout)
	}
	if action := aggregate.FiscalAction(); action != nil {
		response.RetentionReason = action.Reason()
		if !action.Amount().IsZero() {
			response.RetentionAmount = action.Amount().String()
		}
	}
	if delivery := aggregate.Delivery(); delivery != nil {
		response.ReceiverName = delivery.ReceiverName()
		response.DeliveryDate = delivery.DeliveryDate()
		response.DeliveryTime = delivery.DeliveryTime()
	}

	for _, document := range aggregate.Documents() {
		response.Documents = append(response.Documents, documentFromAggregate(document))
	}

	return response
}

func documentFromAggregate(document *shipment.Document) Document {
	response := Document{
		ID:           document.ID().String(),
		Name:         document.Name(),
		MinuteNumber: document.MinuteNumber(),
		Packages:     document.Packages(),
		Weight:       document.Weight(),
		Priority:     document.IsPriority(),
		Status:       document.Status().String(),
		Retained:     document.IsRetained(),
	}
	if retention := document.Retention(); retention != nil {
		response.RetentionReason = retention.Reason()
	}
	return response
}

func shipmentFromView(view queries.GetShipmentQueryResponse) Shipment {
	response := Shipment{
		ID:              view.ID.String(),
		ClientID:        view.ClientID.String(),
		TrackingNumber:  view.TrackingNumber,
		CarrierName:     view.CarrierName,
		TransportMode:   view.TransportMode,
		Packages:        view.Packages,
		Weight:          view.Weight,
		ArrivalDate:     view.ArrivalDate,
		ArrivalFlight:   view.ArrivalFlight,
		Status:          view.Status,
		Retained:        view.Retained,
		RetentionReason: view.RetentionReason,
		RetentionAmount: view.RetentionAmount,
		ReceiverName:    view.ReceiverName,
		DeliveryDate:    view.DeliveryDate,
		DeliveryTime:    view.DeliveryTime,
		Documents:       make([]Document, 0, len(view.Documents)),
	}

	for _, document := range view.Documents {
		response.Documents = append(response.Documents, Document{
			ID:              document.ID.String(),
			Name:            document.Name,
			MinuteNumber:    document.MinuteNumber,
			Packages:        document.Packages,
			Weight:          document.Weight,
			Priority:        document.Priority,
			Status:          document.Status,
			Retained:        document.Retained,
			RetentionReason: document.RetentionReason,
		})
	}

	return response
}

func activeShipmentFromView(view queries.GetActiveShipmentsQueryResponse) ActiveShipment {
	return ActiveShipment{
		ID:                 view.ID.String(),
		TrackingNumber:     view.TrackingNumber,
		CarrierName:        view.CarrierName,
		TransportMode:      view.TransportMode,
		Status:             view.Status,
		Retained:           view.Retained,
		TotalDocuments:     view.TotalDocuments,
		DeliveredDocuments: view.DeliveredDocuments,
	}
}

func deliveryRecordFromView(view queries.GetDeliveryRecordsQueryResponse) DeliveryRecord {
	return DeliveryRecord{
		ID:           view.ID.String(),
		MinuteNumber: view.MinuteNumber,
		Receiver:     view.Receiver,
		DeliveryDate: view.DeliveryDate,
		DeliveryTime: view.DeliveryTime,
		Weight:       view.Weight,
		Packages:     view.Packages,
		Notes:        view.Notes,
	}
}
