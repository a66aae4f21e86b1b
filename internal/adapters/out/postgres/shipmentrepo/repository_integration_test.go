package shipmentrepo_test

import (
	"context"
	"testing"
	"time"

	"freightops/internal/adapters/out/postgres/shipmentrepo"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// ShipmentRepositoryIntegrationTestSuite provides integration tests for
// ShipmentRepository using PostgreSQL containers to verify persistence of the
// shipment aggregate together with its documents.
type ShipmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *shipmentrepo.GormShipmentRepository
	tracker    *MockAggregateTracker
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&shipmentrepo.ShipmentDTO{}, &shipmentrepo.DocumentDTO{}))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shipments CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = shipmentrepo.NewGormShipmentRepository(suite.db, suite.tracker)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_ValidShipment_Success() {
	ctx := context.Background()

	testShipment := suite.createTestShipment("invoice", "packing list")

	suite.tracker.On("TrackAggregate", testShipment.ID(), testShipment).Once()

	err := suite.repository.Add(ctx, testShipment)
	suite.Require().NoError(err)

	suite.assertShipmentCount(1)
	suite.assertDocumentCount(2)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGet_ExistingShipment_ReturnsShipmentWithDocuments() {
	ctx := context.Background()

	original := suite.createTestShipment("invoice", "packing list")
	arrival := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	original.SetArrivalInfo(arrival, "LA3350")

	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.ClientID(), retrieved.ClientID())
	suite.Equal("CTE-100", retrieved.TrackingNumber())
	suite.Equal("Skyfreight", retrieved.CarrierName())
	suite.Equal(shipment.Air, retrieved.TransportMode())
	suite.Equal(3, retrieved.Packages())
	suite.Equal(120.5, retrieved.Weight())
	suite.Require().NotNil(retrieved.ArrivalDate())
	suite.True(arrival.Equal(*retrieved.ArrivalDate()))
	suite.Equal("LA3350", retrieved.ArrivalFlight())
	suite.Equal(shipment.InTransit, retrieved.Status())

	suite.Require().Len(retrieved.Documents(), 2)
	names := []string{retrieved.Documents()[0].Name(), retrieved.Documents()[1].Name()}
	suite.Contains(names, "invoice")
	suite.Contains(names, "packing list")
	for _, document := range retrieved.Documents() {
		suite.Equal(shipment.Pending, document.Status())
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGet_NonExistentShipment_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_RetentionRoundTrip() {
	ctx := context.Background()

	testShipment := suite.createTestShipment()
	suite.tracker.On("TrackAggregate", testShipment.ID(), testShipment).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testShipment))

	action, err := shipment.NewFiscalAction(
		"ACT-77", "missing customs clearance", shipment.ParseAmount("250,75"), nil, nil, "awaiting broker",
	)
	suite.Require().NoError(err)
	suite.Require().NoError(testShipment.Retain(action))

	suite.Require().NoError(suite.repository.Update(ctx, testShipment))

	retrieved, err := suite.repository.Get(ctx, testShipment.ID())
	suite.Require().NoError(err)

	suite.Equal(shipment.Retained, retrieved.Status())
	suite.True(retrieved.IsRetained())
	suite.Require().NotNil(retrieved.FiscalAction())
	suite.Equal("ACT-77", retrieved.FiscalAction().ActionNumber())
	suite.Equal("missing customs clearance", retrieved.FiscalAction().Reason())
	suite.Equal("250.75", retrieved.FiscalAction().Amount().String())
	suite.Equal("awaiting broker", retrieved.FiscalAction().Notes())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_DocumentDelivery_PersistsDerivedStatus() {
	ctx := context.Background()

	testShipment := suite.createTestShipment("invoice", "packing list")
	suite.tracker.On("TrackAggregate", testShipment.ID(), testShipment).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testShipment))

	details, err := shipment.NewDeliveryDetails("Ana", "2026-03-01", "14:30")
	suite.Require().NoError(err)
	suite.Require().NoError(testShipment.DeliverDocument(testShipment.Documents()[0].ID(), details))

	suite.Require().NoError(suite.repository.Update(ctx, testShipment))

	retrieved, err := suite.repository.Get(ctx, testShipment.ID())
	suite.Require().NoError(err)

	suite.Equal(shipment.PartiallyDelivered, retrieved.Status())

	delivered, err := retrieved.Document(testShipment.Documents()[0].ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.DocumentDelivered, delivered.Status())
	suite.Require().NotNil(delivered.Delivery())
	suite.Equal("Ana", delivered.Delivery().ReceiverName())
	suite.Equal("2026-03-01", delivered.Delivery().DeliveryDate())
	suite.Equal("14:30", delivered.Delivery().DeliveryTime())

	pending, err := retrieved.Document(testShipment.Documents()[1].ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.Pending, pending.Status())
	suite.Nil(pending.Delivery())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetAllActive_ExcludesFullyDelivered() {
	ctx := context.Background()

	active := suite.createTestShipment("invoice")
	finished := suite.createTestShipmentWithTracking("CTE-200")

	details, err := shipment.NewDeliveryDetails("Ana", "2026-03-01", "14:30")
	suite.Require().NoError(err)
	suite.Require().NoError(finished.PickUp())
	suite.Require().NoError(finished.Finalize(details))

	suite.tracker.On("TrackAggregate", active.ID(), active).Once()
	suite.tracker.On("TrackAggregate", finished.ID(), finished).Once()
	suite.Require().NoError(suite.repository.Add(ctx, active))
	suite.Require().NoError(suite.repository.Add(ctx, finished))

	shipments, err := suite.repository.GetAllActive(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(shipments, 1)
	suite.Equal(active.ID(), shipments[0].ID())
	suite.Len(shipments[0].Documents(), 1)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestDelete_RemovesShipmentAndDocuments() {
	ctx := context.Background()

	testShipment := suite.createTestShipment("invoice", "packing list")
	suite.tracker.On("TrackAggregate", testShipment.ID(), testShipment).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testShipment))

	err := suite.repository.Delete(ctx, testShipment.ID())
	suite.Require().NoError(err)

	suite.assertShipmentCount(0)
	suite.assertDocumentCount(0)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestDelete_NonExistentShipment_ReturnsNotFoundError() {
	ctx := context.Background()

	err := suite.repository.Delete(ctx, kernel.NewUUID())
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

// createTestShipment builds an in-transit air shipment with one pending
// document per given name.
func (suite *ShipmentRepositoryIntegrationTestSuite) createTestShipment(documentNames ...string) *shipment.Shipment {
	testShipment := suite.createTestShipmentWithTracking("CTE-100")
	for _, name := range documentNames {
		_, err := testShipment.AddDocument(name, "", nil, 0, 0, "", false)
		suite.Require().NoError(err)
	}
	return testShipment
}

func (suite *ShipmentRepositoryIntegrationTestSuite) createTestShipmentWithTracking(
	trackingNumber string,
) *shipment.Shipment {
	testShipment, err := shipment.NewShipment(
		kernel.NewUUID(), kernel.NewUUID(), trackingNumber, "Skyfreight", shipment.Air, 3, 120.5,
	)
	suite.Require().NoError(err)
	return testShipment
}

func (suite *ShipmentRepositoryIntegrationTestSuite) assertShipmentCount(expected int) {
	var count int64
	err := suite.db.Model(&shipmentrepo.ShipmentDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) assertDocumentCount(expected int) {
	var count int64
	err := suite.db.Model(&shipmentrepo.DocumentDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestShipmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShipmentRepositoryIntegrationTestSuite))
}
