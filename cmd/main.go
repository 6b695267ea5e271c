package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/haripriyathati/bloodlink-connect-plus/internal/db"
	"github.com/haripriyathati/bloodlink-connect-plus/internal/handlers"
	"github.com/haripriyathati/bloodlink-connect-plus/internal/jobs"
	"github.com/haripriyathati/bloodlink-connect-plus/internal/repository"
	"github.com/haripriyathati/bloodlink-connect-plus/internal/router"
	"github.com/haripriyathati/bloodlink-connect-plus/internal/router/config"
	"github.com/haripriyathati/bloodlink-connect-plus/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	runDBMigration(cfg.MigrationURL, cfg.PostgresConn)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer dbPool.Close()

	logger := log.New(os.Stdout, "INFO: ", log.LstdFlags)

	userRepo := repository.NewPostgresUserRepository(dbPool)
	stockRepo := repository.NewPostgresStockRepository(dbPool)
	requestRepo := repository.NewPostgresRequestRepository(dbPool)
	offerRepo := repository.NewPostgresOfferRepository(dbPool)
	notificationRepo := repository.NewPostgresNotificationRepository(dbPool)
	uow := repository.NewPostgresUnitOfWork(dbPool)

	userService := services.NewUserService(userRepo)
	stockService := services.NewStockService(stockRepo)
	requestService := services.NewRequestService(requestRepo, userRepo)
	offerService := services.NewOfferService(offerRepo, userRepo, notificationRepo)
	notificationService := services.NewNotificationService(notificationRepo, offerRepo, userRepo)
	approvalService := services.NewApprovalService(uow, userRepo)

	userHandler := handlers.NewUserHandler(userService, logger, 5*time.Second)
	stockHandler := handlers.NewStockHandler(stockService, logger, 5*time.Second)
	requestHandler := handlers.NewRequestHandler(requestService, approvalService, logger, 5*time.Second)
	offerHandler := handlers.NewOfferHandler(offerService, approvalService, notificationService, logger, 5*time.Second)
	notificationHandler := handlers.NewNotificationHandler(notificationService, logger, 5*time.Second)
	eligibilityHandler := handlers.NewEligibilityHandler(logger)

	scheduler := jobs.StartDailyReminderScheduler(notificationService, logger)
	defer scheduler.Stop()

	routes := router.InitRoutes(userHandler, stockHandler, requestHandler, offerHandler, notificationHandler, eligibilityHandler)

	log.Printf("server is listening on %s...", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", err)
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("failed to run migrate up:", err)
	}
	log.Println("db migrated successfully")
}
