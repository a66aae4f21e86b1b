package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"freightops/cmd"
	httpin "freightops/internal/adapters/in/http"
	"freightops/internal/adapters/out/postgres/deliveryrecordrepo"
	"freightops/internal/adapters/out/postgres/shipmentrepo"
	"freightops/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := startJobs(&app, configs)
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	config := cmd.Config{
		HTTPPort:            os.Getenv("HTTP_PORT"),
		DBHost:              os.Getenv("DB_HOST"),
		DBPort:              os.Getenv("DB_PORT"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              os.Getenv("DB_NAME"),
		DBSslMode:           os.Getenv("DB_SSLMODE"),
		SnapshotSize:        os.Getenv("SNAPSHOT_SIZE"),
		SnapshotTTL:         os.Getenv("SNAPSHOT_TTL"),
		SnapshotRefreshSpec: os.Getenv("SNAPSHOT_REFRESH_SPEC"),
	}
	return config
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	)

	// TranslateError is required so unique index violations surface as
	// gorm.ErrDuplicatedKey and the ledger can report duplicate minute
	// numbers as the typed conflict error.
	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.DocumentDTO{},
		&deliveryrecordrepo.DeliveryRecordDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startJobs(app *cmd.CompositionRoot, configs cmd.Config) *jobs.JobManager {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	jobManager := jobs.NewJobManager(
		app.ShipmentRepository(),
		app.ShipmentSnapshot(),
		configs.SnapshotRefreshSpecValue(),
		logger,
	)

	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	return jobManager
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateShipmentCommandHandler(),
		app.CreateTransitionShipmentCommandHandler(),
		app.CreateTransitionDocumentCommandHandler(),
		app.CreateCommitRetentionCommandHandler(),
		app.CreateClearRetentionCommandHandler(),
		app.CreateFinalizeDeliveryCommandHandler(),
		app.CreateDeleteShipmentCommandHandler(),
		app.CreateGetShipmentQueryHandler(),
		app.CreateGetActiveShipmentsQueryHandler(),
		app.CreateGetDeliveryRecordsQueryHandler(),
		app.ShipmentSnapshot(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
