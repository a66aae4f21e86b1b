package commands_test

import (
	"errors"
	"testing"

	"freightops/internal/core/application/usecases/commands"
	"freightops/internal/core/domain/model/deliveryrecord"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFinalizeDeliveryCommandHandler_Handle_AllDocuments(t *testing.T) {
	ctx := t.Context()
	s := newTestShipment(t, "Invoice batch A", "Invoice batch B")

	cmd, err := commands.NewFinalizeDeliveryCommand(s.ID(), nil, testDeliveryInput())
	require.NoError(t, err)

	var created []*deliveryrecord.DeliveryRecord
	repo := new(MockShipmentRepository)
	recordRepo := new(MockDeliveryRecordRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, s.ID()).Return(s, nil).Once(),
		recordRepo.On("Add", mock.Anything, mock.AnythingOfType("*deliveryrecord.DeliveryRecord")).
			Run(func(args mock.Arguments) {
				created = append(created, args.Get(1).(*deliveryrecord.DeliveryRecord))
			}).Return(nil).Twice(),
		repo.On("Update", mock.Anything, s).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewFinalizeDeliveryCommandHandler(factory, recordRepo)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, result.RecordsCreated)
	assert.Equal(t, shipment.DeliveredFinal, result.Shipment.Status())
	require.NotNil(t, result.Shipment.Delivery())
	assert.Equal(t, "Ana", result.Shipment.Delivery().ReceiverName())

	require.Len(t, created, 2)
	for _, record := range created {
		assert.Equal(t, "Ana", record.Receiver())
		assert.Equal(t, "2026-03-01", record.DeliveryDate())
		// documents carry no totals of their own, so the shipment's apply
		assert.InDelta(t, 120.5, record.Weight(), 0.001)
		assert.Equal(t, 3, record.Packages())
		assert.Regexp(t, `^CTE-100-[0-9a-f]{4}$`, record.MinuteNumber())
	}
	repo.AssertExpectations(t)
	recordRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestFinalizeDeliveryCommandHandler_Handle_SubsetLeavesShipmentPartial(t *testing.T) {
	ctx := t.Context()
	s := newTestShipment(t, "Invoice batch A", "Invoice batch B")
	firstID := s.Documents()[0].ID()

	cmd, err := commands.NewFinalizeDeliveryCommand(s.ID(), []kernel.UUID{firstID}, testDeliveryInput())
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	recordRepo := new(MockDeliveryRecordRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, s.ID()).Return(s, nil).Once(),
		recordRepo.On("Add", mock.Anything, mock.AnythingOfType("*deliveryrecord.DeliveryRecord")).
			Return(nil).Once(),
		repo.On("Update", mock.Anything, s).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewFinalizeDeliveryCommandHandler(factory, recordRepo)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, result.RecordsCreated)
	assert.Equal(t, shipment.PartiallyDelivered, result.Shipment.Status())
}

func TestFinalizeDeliveryCommandHandler_Handle_PartialCascade_KeepsProgress(t *testing.T) {
	ctx := t.Context()
	s := newTestShipment(t, "Invoice batch A", "Invoice batch B", "Invoice batch C")
	secondID := s.Documents()[1].ID()
	thirdID := s.Documents()[2].ID()

	cmd, err := commands.NewFinalizeDeliveryCommand(s.ID(), nil, testDeliveryInput())
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	recordRepo := new(MockDeliveryRecordRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, s.ID()).Return(s, nil).Once(),
		recordRepo.On("Add", mock.Anything, mock.AnythingOfType("*deliveryrecord.DeliveryRecord")).
			Return(nil).Once(),
		recordRepo.On("Add", mock.Anything, mock.AnythingOfType("*deliveryrecord.DeliveryRecord")).
			Return(errors.New("ledger unavailable")).Once(),
		repo.On("Update", mock.Anything, s).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewFinalizeDeliveryCommandHandler(factory, recordRepo)
	result, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrPartialCascade)

	var partialErr *commands.PartialCascadeError
	require.ErrorAs(t, err, &partialErr)
	assert.Equal(t, 1, partialErr.RecordsCreated)
	assert.Equal(t, []string{secondID.String(), thirdID.String()}, partialErr.FailedDocumentIDs)

	// the document that made it through stays delivered and is persisted
	assert.Equal(t, 1, result.RecordsCreated)
	assert.Equal(t, shipment.PartiallyDelivered, result.Shipment.Status())
	assert.True(t, result.Shipment.Documents()[0].IsDelivered())
	assert.False(t, result.Shipment.Documents()[1].IsDelivered())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestFinalizeDeliveryCommandHandler_Handle_SkipsAlreadyDelivered(t *testing.T) {
	ctx := t.Context()
	s := newTestShipment(t, "Invoice batch A", "Invoice batch B")
	firstID := s.Documents()[0].ID()

	details, err := shipment.NewDeliveryDetails("Ana", "2026-03-01", "14:30")
	require.NoError(t, err)
	require.NoError(t, s.DeliverDocument(firstID, details))

	cmd, err := commands.NewFinalizeDeliveryCommand(s.ID(), nil, testDeliveryInput())
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	recordRepo := new(MockDeliveryRecordRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, s.ID()).Return(s, nil).Once(),
		recordRepo.On("Add", mock.Anything, mock.AnythingOfType("*deliveryrecord.DeliveryRecord")).
			Return(nil).Once(),
		repo.On("Update", mock.Anything, s).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewFinalizeDeliveryCommandHandler(factory, recordRepo)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, result.RecordsCreated)
	assert.Equal(t, shipment.DeliveredFinal, result.Shipment.Status())
	recordRepo.AssertExpectations(t)
}

func TestFinalizeDeliveryCommandHandler_Handle_UnknownDocument(t *testing.T) {
	ctx := t.Context()
	s := newTestShipment(t, "Invoice batch A")

	cmd, err := commands.NewFinalizeDeliveryCommand(s.ID(),
		[]kernel.UUID{kernel.NewUUID()}, testDeliveryInput())
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

	h := commands.NewFinalizeDeliveryCommandHandler(factory, new(MockDeliveryRecordRepository))
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, shipment.ErrDocumentNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
