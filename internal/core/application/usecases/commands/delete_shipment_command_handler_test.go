package commands_test

import (
	"testing"

	"freightops/internal/core/application/usecases/commands"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewDeleteShipmentCommand(t *testing.T) {
	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewDeleteShipmentCommand(shipmentID)
	require.NoError(t, err)
	assert.Equal(t, shipmentID, cmd.ShipmentID())

	_, err = commands.NewDeleteShipmentCommand(kernel.UUID{})
	require.Error(t, err)
}

func TestDeleteShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	s := newTestShipment(t, "Invoice batch A")

	cmd, err := commands.NewDeleteShipmentCommand(s.ID())
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, s.ID()).Return(s, nil).Once(),
		repo.On("Delete", mock.Anything, s.ID()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteShipmentCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeleteShipmentCommandHandler_Handle_RefusedWhileShipmentRetained(t *testing.T) {
	ctx := t.Context()
	s := newTestShipment(t)
	action, err := shipment.NewFiscalAction("", "pending duty payment", shipment.ParseAmount("100"), nil, nil, "")
	require.NoError(t, err)
	require.NoError(t, s.Retain(action))

	cmd, err := commands.NewDeleteShipmentCommand(s.ID())
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, s.ID()).Return(s, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteShipmentCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, shipment.ErrShipmentIsRetained)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteShipmentCommandHandler_Handle_RefusedWhileDocumentRetained(t *testing.T) {
	ctx := t.Context()
	s := newTestShipment(t, "Invoice batch A")
	action, err := shipment.NewFiscalAction("", "pending duty payment", shipment.ParseAmount("100"), nil, nil, "")
	require.NoError(t, err)
	require.NoError(t, s.RetainDocument(s.Documents()[0].ID(), action))

	cmd, err := commands.NewDeleteShipmentCommand(s.ID())
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, s.ID()).Return(s, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteShipmentCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, shipment.ErrDocumentIsRetained)
}

func TestDeleteShipmentCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	shipmentID := kernel.NewUUID()

	cmd, err := commands.NewDeleteShipmentCommand(shipmentID)
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, shipmentID).
			Return(nil, errs.NewObjectNotFoundError("shipmentID", shipmentID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteShipmentCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
