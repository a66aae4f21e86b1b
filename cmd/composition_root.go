package cmd

import (
	"freightops/internal/adapters/out/postgres"
	"freightops/internal/adapters/out/postgres/deliveryrecordrepo"
	"freightops/internal/core/application/snapshot"
	"freightops/internal/core/application/usecases/commands"
	"freightops/internal/core/application/usecases/queries"
	"freightops/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB           *gorm.DB
	uowFactory       postgres.GormUnitOfWorkFactory
	ledgerRepo       ports.DeliveryRecordRepository
	shipmentSnapshot *snapshot.ShipmentSnapshot
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		// The delivery ledger is written outside the shipment transaction,
		// so cascade handlers get a repository on the main connection.
		ledgerRepo: deliveryrecordrepo.NewGormDeliveryRecordRepository(gormDB),
		shipmentSnapshot: snapshot.NewShipmentSnapshot(
			configs.SnapshotSizeValue(), configs.SnapshotTTLValue(),
		),
	}
}

func (c *CompositionRoot) ShipmentSnapshot() *snapshot.ShipmentSnapshot {
	return c.shipmentSnapshot
}

// ShipmentRepository returns a repository on the main connection, used by
// jobs that only read.
func (c *CompositionRoot) ShipmentRepository() ports.ShipmentRepository {
	return c.uowFactory.Create().ShipmentRepository()
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateTransitionShipmentCommandHandler() commands.TransitionShipmentCommandHandler {
	return commands.NewTransitionShipmentCommandHandler(c.shipmentUoWFactory(), c.ledgerRepo)
}

func (c *CompositionRoot) CreateTransitionDocumentCommandHandler() commands.TransitionDocumentCommandHandler {
	return commands.NewTransitionDocumentCommandHandler(c.shipmentUoWFactory(), c.ledgerRepo)
}

func (c *CompositionRoot) CreateCommitRetentionCommandHandler() commands.CommitRetentionCommandHandler {
	return commands.NewCommitRetentionCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateClearRetentionCommandHandler() commands.ClearRetentionCommandHandler {
	return commands.NewClearRetentionCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateFinalizeDeliveryCommandHandler() commands.FinalizeDeliveryCommandHandler {
	return commands.NewFinalizeDeliveryCommandHandler(c.shipmentUoWFactory(), c.ledgerRepo)
}

func (c *CompositionRoot) CreateDeleteShipmentCommandHandler() commands.DeleteShipmentCommandHandler {
	return commands.NewDeleteShipmentCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveShipmentsQueryHandler() queries.GetActiveShipmentsQueryHandler {
	return queries.NewGetActiveShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryRecordsQueryHandler() queries.GetDeliveryRecordsQueryHandler {
	return queries.NewGetDeliveryRecordsQueryHandler(c.gormDB)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}
