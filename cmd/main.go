package main

import (
	"os"

	"crepe_controlador/config"
	"crepe_controlador/internal/delivery"
	"crepe_controlador/internal/repository"
	"crepe_controlador/internal/usecase"
	"crepe_controlador/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.LoadConfig()
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
		logger.Warnf("Invalid LOG_LEVEL '%s', using default: %s", cfg.LogLevel, logLevel.String())
	}
	logger.SetLevel(logLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.Info("Starting Crepe Controlador API...")
	logger.Infof("Log level set to: %s", logLevel.String())

	if cfg.DatabaseURL == "" {
		logger.Fatal("FATAL: Database URL is not configured. Set DATABASE_URL.")
	}
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("FATAL: Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connection established.")

	// --- Dependency Injection ---
	itemRepo := repository.NewPostgresItemRepository(database, logger)
	pedidoRepo := repository.NewPostgresPedidoRepository(database, logger)
	dashboardRepo := repository.NewPostgresDashboardRepository(database, cfg.TimeZone, logger)
	logger.Info("Repositories initialized.")

	itemUseCase := usecase.NewItemUseCase(itemRepo, logger)
	pedidoUseCase := usecase.NewPedidoUseCase(pedidoRepo, itemRepo, logger)
	dashboardUseCase := usecase.NewDashboardUseCase(dashboardRepo, logger)
	logger.Info("Use cases initialized.")

	itemHandler := delivery.NewItemHandler(itemUseCase, logger)
	pedidoHandler := delivery.NewPedidoHandler(pedidoUseCase, logger)
	dashboardHandler := delivery.NewDashboardHandler(dashboardUseCase, logger)
	logger.Info("Handlers initialized.")

	router := gin.Default()
	router.RedirectTrailingSlash = false

	api := router.Group("/api")
	itemHandler.RegisterRoutes(api)
	pedidoHandler.RegisterRoutes(api)
	dashboardHandler.RegisterRoutes(api)
	logger.Info("Routes registered.")

	// --- Start Server ---
	logger.Infof("Starting server on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		logger.Errorf("Failed to start server on port %s: %v", cfg.Port, err)
		os.Exit(1)
	}
}
