// Package http exposes the workflow engine over a REST API. Handlers bind
// request DTOs, translate them into commands and queries, and map the error
// taxonomy onto HTTP status codes.
package http

import (
	"errors"
	"net/http"

	"freightops/internal/core/application/snapshot"
	"freightops/internal/core/application/usecases/commands"
	"freightops/internal/core/application/usecases/queries"
	"freightops/internal/core/domain/model/deliveryrecord"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
// Mutating handlers re-prime the shipment snapshot with the aggregate
// returned by the command, so reads served from the snapshot see each write.
type Server struct {
	// Command handlers
	createShipmentHandler     commands.CreateShipmentCommandHandler
	transitionShipmentHandler commands.TransitionShipmentCommandHandler
	transitionDocumentHandler commands.TransitionDocumentCommandHandler
	commitRetentionHandler    commands.CommitRetentionCommandHandler
	clearRetentionHandler     commands.ClearRetentionCommandHandler
	finalizeDeliveryHandler   commands.FinalizeDeliveryCommandHandler
	deleteShipmentHandler     commands.DeleteShipmentCommandHandler

	// Query handlers
	getShipmentHandler        queries.GetShipmentQueryHandler
	getActiveShipmentsHandler queries.GetActiveShipmentsQueryHandler
	getDeliveryRecordsHandler queries.GetDeliveryRecordsQueryHandler

	shipmentSnapshot *snapshot.ShipmentSnapshot
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	createShipmentHandler commands.CreateShipmentCommandHandler,
	transitionShipmentHandler commands.TransitionShipmentCommandHandler,
	transitionDocumentHandler commands.TransitionDocumentCommandHandler,
	commitRetentionHandler commands.CommitRetentionCommandHandler,
	clearRetentionHandler commands.ClearRetentionCommandHandler,
	finalizeDeliveryHandler commands.FinalizeDeliveryCommandHandler,
	deleteShipmentHandler commands.DeleteShipmentCommandHandler,
	getShipmentHandler queries.GetShipmentQueryHandler,
	getActiveShipmentsHandler queries.GetActiveShipmentsQueryHandler,
	getDeliveryRecordsHandler queries.GetDeliveryRecordsQueryHandler,
	shipmentSnapshot *snapshot.ShipmentSnapshot,
) *Server {
	return &Server{
		createShipmentHandler:     createShipmentHandler,
		transitionShipmentHandler: transitionShipmentHandler,
		transitionDocumentHandler: transitionDocumentHandler,
		commitRetentionHandler:    commitRetentionHandler,
		clearRetentionHandler:     clearRetentionHandler,
		finalizeDeliveryHandler:   finalizeDeliveryHandler,
		deleteShipmentHandler:     deleteShipmentHandler,
		getShipmentHandler:        getShipmentHandler,
		getActiveShipmentsHandler: getActiveShipmentsHandler,
		getDeliveryRecordsHandler: getDeliveryRecordsHandler,
		shipmentSnapshot:          shipmentSnapshot,
	}
}

// RegisterRoutes attaches every endpoint to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/shipments", s.CreateShipment)
	api.GET("/shipments", s.GetShipments)
	api.GET("/shipments/:shipmentId", s.GetShipment)
	api.DELETE("/shipments/:shipmentId", s.DeleteShipment)
	api.POST("/shipments/:shipmentId/status", s.ChangeShipmentStatus)
	api.POST("/shipments/:shipmentId/retention", s.CommitShipmentRetention)
	api.DELETE("/shipments/:shipmentId/retention", s.ClearShipmentRetention)
	api.POST("/shipments/:shipmentId/finalize", s.FinalizeShipmentDelivery)
	api.POST("/shipments/:shipmentId/documents/:documentId/status", s.ChangeDocumentStatus)
	api.POST("/shipments/:shipmentId/documents/:documentId/retention", s.CommitDocumentRetention)
	api.DELETE("/shipments/:shipmentId/documents/:documentId/retention", s.ClearDocumentRetention)
	api.GET("/clients/:clientId/deliveries", s.GetClientDeliveries)
}

// CreateShipment handles POST /api/v1/shipments - registers a shipment with
// its documents.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var request NewShipment
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	clientID, err := kernel.UUIDFromString(request.ClientID)
	if err != nil {
		return badRequest(ctx, "Invalid client id: "+err.Error())
	}

	transportMode, err := shipment.TransportModeFromString(request.TransportMode)
	if err != nil {
		return badRequest(ctx, "Invalid transport mode: "+err.Error())
	}

	arrivalDate, err := parseOptionalDate(request.ArrivalDate)
	if err != nil {
		return badRequest(ctx, "Invalid arrival date: "+err.Error())
	}

	documents := make([]commands.DocumentInput, 0, len(request.Documents))
	for _, document := range request.Documents {
		documents = append(documents, commands.DocumentInput{
			Name:           document.Name,
			MinuteNumber:   document.MinuteNumber,
			InvoiceNumbers: document.InvoiceNumbers,
			Packages:       document.Packages,
			Weight:         document.Weight,
			Notes:          document.Notes,
			Priority:       document.Priority,
		})
	}

	cmd, err := commands.NewCreateShipmentCommand(
		kernel.NewUUID(),
		clientID,
		request.TrackingNumber,
		request.CarrierName,
		transportMode,
		request.Packages,
		request.Weight,
		arrivalDate,
		request.ArrivalFlight,
		documents,
	)
	if err != nil {
		return badRequest(ctx, "Invalid shipment data: "+err.Error())
	}

	created, err := s.createShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	s.shipmentSnapshot.Prime(created)
	return ctx.JSON(http.StatusCreated, shipmentFromAggregate(created))
}

// GetShipments handles GET /api/v1/shipments - lists active shipments.
func (s *Server) GetShipments(ctx echo.Context) error {
	views, err := s.getActiveShipmentsHandler.Handle(
		ctx.Request().Context(), queries.NewGetActiveShipmentsQuery(),
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]ActiveShipment, 0, len(views))
	for _, view := range views {
		response = append(response, activeShipmentFromView(view))
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetShipment handles GET /api/v1/shipments/:shipmentId - retrieves one
// shipment with its documents. Served from the snapshot when present.
func (s *Server) GetShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id: "+err.Error())
	}

	if aggregate, ok := s.shipmentSnapshot.Get(shipmentID); ok {
		return ctx.JSON(http.StatusOK, shipmentFromAggregate(aggregate))
	}

	query, err := queries.NewGetShipmentQuery(shipmentID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	view, err := s.getShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipmentFromView(view))
}

// DeleteShipment handles DELETE /api/v1/shipments/:shipmentId - removes a
// shipment that carries no active retention.
func (s *Server) DeleteShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id: "+err.Error())
	}

	cmd, err := commands.NewDeleteShipmentCommand(shipmentID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.deleteShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	s.shipmentSnapshot.Invalidate(shipmentID)
	return ctx.NoContent(http.StatusNoContent)
}

// ChangeShipmentStatus handles POST /api/v1/shipments/:shipmentId/status -
// requests a shipment status transition.
func (s *Server) ChangeShipmentStatus(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id: "+err.Error())
	}

	var request StatusChange
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := shipment.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	retention, delivery, err := transitionInputs(request)
	if err != nil {
		return badRequest(ctx, "Invalid payload: "+err.Error())
	}

	cmd, err := commands.NewTransitionShipmentCommand(shipmentID, target, retention, delivery)
	if err != nil {
		return s.writeError(ctx, err)
	}

	updated, err := s.transitionShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if updated != nil {
			s.shipmentSnapshot.Prime(updated)
		}
		return s.writeError(ctx, err)
	}

	s.shipmentSnapshot.Prime(updated)
	return ctx.JSON(http.StatusOK, shipmentFromAggregate(updated))
}

// ChangeDocumentStatus handles
// POST /api/v1/shipments/:shipmentId/documents/:documentId/status -
// requests a document status transition.
func (s *Server) ChangeDocumentStatus(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id: "+err.Error())
	}

	documentID, err := kernel.UUIDFromString(ctx.Param("documentId"))
	if err != nil {
		return badRequest(ctx, "Invalid document id: "+err.Error())
	}

	var request StatusChange
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := shipment.DocumentStatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	retention, delivery, err := transitionInputs(request)
	if err != nil {
		return badRequest(ctx, "Invalid payload: "+err.Error())
	}

	cmd, err := commands.NewTransitionDocumentCommand(shipmentID, documentID, target, retention, delivery)
	if err != nil {
		return s.writeError(ctx, err)
	}

	updated, err := s.transitionDocumentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	s.shipmentSnapshot.Prime(updated)
	return ctx.JSON(http.StatusOK, shipmentFromAggregate(updated))
}

// CommitShipmentRetention handles POST /api/v1/shipments/:shipmentId/retention
// - places or edits a shipment-level fiscal hold.
func (s *Server) CommitShipmentRetention(ctx echo.Context) error {
	return s.commitRetention(ctx, nil)
}

// CommitDocumentRetention handles
// POST /api/v1/shipments/:shipmentId/documents/:documentId/retention -
// places or edits a document-level fiscal hold.
func (s *Server) CommitDocumentRetention(ctx echo.Context) error {
	documentID, err := kernel.UUIDFromString(ctx.Param("documentId"))
	if err != nil {
		return badRequest(ctx, "Invalid document id: "+err.Error())
	}
	return s.commitRetention(ctx, &documentID)
}

func (s *Server) commitRetention(ctx echo.Context, documentID *kernel.UUID) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id: "+err.Error())
	}

	var request Retention
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	input, err := request.toInput()
	if err != nil {
		return badRequest(ctx, "Invalid retention data: "+err.Error())
	}

	cmd, err := commands.NewCommitRetentionCommand(shipmentID, documentID, input)
	if err != nil {
		return s.writeError(ctx, err)
	}

	updated, err := s.commitRetentionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	s.shipmentSnapshot.Prime(updated)
	return ctx.JSON(http.StatusOK, shipmentFromAggregate(updated))
}

// ClearShipmentRetention handles
// DELETE /api/v1/shipments/:shipmentId/retention - lifts a shipment-level
// hold. Clearing an absent hold is a no-op.
func (s *Server) ClearShipmentRetention(ctx echo.Context) error {
	return s.clearRetention(ctx, nil)
}

// ClearDocumentRetention handles
// DELETE /api/v1/shipments/:shipmentId/documents/:documentId/retention -
// lifts a document-level hold.
func (s *Server) ClearDocumentRetention(ctx echo.Context) error {
	documentID, err := kernel.UUIDFromString(ctx.Param("documentId"))
	if err != nil {
		return badRequest(ctx, "Invalid document id: "+err.Error())
	}
	return s.clearRetention(ctx, &documentID)
}

func (s *Server) clearRetention(ctx echo.Context, documentID *kernel.UUID) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id: "+err.Error())
	}

	cmd, err := commands.NewClearRetentionCommand(shipmentID, documentID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	updated, err := s.clearRetentionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	s.shipmentSnapshot.Prime(updated)
	return ctx.JSON(http.StatusOK, shipmentFromAggregate(updated))
}

// FinalizeShipmentDelivery handles POST /api/v1/shipments/:shipmentId/finalize
// - delivers the selected documents (all when none given) and closes out the
// shipment. A partial cascade reports 409 with the progress made.
func (s *Server) FinalizeShipmentDelivery(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id: "+err.Error())
	}

	var request FinalizeDelivery
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	documentIDs := make([]kernel.UUID, 0, len(request.DocumentIDs))
	for _, raw := range request.DocumentIDs {
		documentID, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return badRequest(ctx, "Invalid document id: "+parseErr.Error())
		}
		documentIDs = append(documentIDs, documentID)
	}

	cmd, err := commands.NewFinalizeDeliveryCommand(shipmentID, documentIDs, request.Delivery.toInput())
	if err != nil {
		return s.writeError(ctx, err)
	}

	result, err := s.finalizeDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if result.Shipment != nil {
			s.shipmentSnapshot.Prime(result.Shipment)
		}
		return s.writeError(ctx, err)
	}

	s.shipmentSnapshot.Prime(result.Shipment)
	return ctx.JSON(http.StatusOK, FinalizeDeliveryResponse{
		Shipment:       shipmentFromAggregate(result.Shipment),
		RecordsCreated: result.RecordsCreated,
	})
}

// GetClientDeliveries handles GET /api/v1/clients/:clientId/deliveries -
// lists a client's delivery ledger.
func (s *Server) GetClientDeliveries(ctx echo.Context) error {
	clientID, err := kernel.UUIDFromString(ctx.Param("clientId"))
	if err != nil {
		return badRequest(ctx, "Invalid client id: "+err.Error())
	}

	query, err := queries.NewGetDeliveryRecordsQuery(clientID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	views, err := s.getDeliveryRecordsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]DeliveryRecord, 0, len(views))
	for _, view := range views {
		response = append(response, deliveryRecordFromView(view))
	}

	return ctx.JSON(http.StatusOK, response)
}

func transitionInputs(request StatusChange) (*commands.RetentionInput, *commands.DeliveryInput, error) {
	var retention *commands.RetentionInput
	if request.Retention != nil {
		input, err := request.Retention.toInput()
		if err != nil {
			return nil, nil, err
		}
		retention = &input
	}

	var delivery *commands.DeliveryInput
	if request.Delivery != nil {
		input := request.Delivery.toInput()
		delivery = &input
	}

	return retention, delivery, nil
}

// writeError maps the application error taxonomy onto HTTP status codes.
func (s *Server) writeError(ctx echo.Context, err error) error {
	var cascadeErr *commands.PartialCascadeError
	if errors.As(err, &cascadeErr) {
		return ctx.JSON(http.StatusConflict, PartialCascadeError{
			Code:              http.StatusConflict,
			Message:           cascadeErr.Error(),
			RecordsCreated:    cascadeErr.RecordsCreated,
			FailedDocumentIDs: cascadeErr.FailedDocumentIDs,
		})
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, deliveryrecord.ErrMinuteNumberTaken),
		errors.Is(err, shipment.ErrShipmentIsRetained),
		errors.Is(err, shipment.ErrDocumentIsRetained):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
