package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"smartestate/server/config"
	"smartestate/server/internal/alerts"
	"smartestate/server/internal/api"
	"smartestate/server/internal/construction"
	"smartestate/server/internal/database"
	"smartestate/server/internal/economic"
	"smartestate/server/internal/geocoding"
	"smartestate/server/internal/investment"
	"smartestate/server/internal/location"
	"smartestate/server/internal/market"
	"smartestate/server/internal/places"
	"smartestate/server/internal/pricing"
	"smartestate/server/internal/processor"
	"smartestate/server/internal/queue"
	"smartestate/server/internal/scheduler"
	"smartestate/server/internal/trend"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	dbPath := cfg.Database.Path
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		logger.WithError(err).Fatal("Failed to create database directory")
	}
	logger.Infof("Using database at: %s", dbPath)

	store, err := database.New(dbPath, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}

	timeout := time.Duration(cfg.Collaborators.HTTPTimeout) * time.Second

	economicClient := economic.NewClient(cfg.Collaborators.EconomicAPIKey, timeout, nil, logger)
	geocoder := geocoding.NewGeocoder(timeout, nil, logger)
	placesClient := places.NewClient(cfg.Collaborators.MapsAPIKey, timeout, nil, logger)
	areaClient := places.NewAreaClient(timeout, nil, logger)

	classifier := trend.NewClassifier(logger)
	forecaster := market.NewForecaster(classifier, nil, logger)
	predictor := pricing.NewPredictor(nil, logger)
	engine := investment.NewEngine(classifier, predictor, nil, logger)
	scorer := location.NewScorer(geocoder, placesClient, areaClient, nil, nil, logger)
	planner := construction.NewPlanner(nil, logger)
	alertService := alerts.NewService(store, alerts.LogNotifier{Logger: logger}, logger)

	// Background indicator refresh pipeline
	indicatorQueue := queue.NewIndicatorQueue(cfg.IndicatorRefresh.MaxBatchSize, logger)
	batchProcessor := processor.NewBatchProcessor(store, indicatorQueue, cfg, logger)
	refreshScheduler := scheduler.NewScheduler(economicClient, indicatorQueue, alertService, cfg, logger)

	indicatorQueue.Start()
	batchProcessor.Start()
	refreshScheduler.Start()

	handler := api.NewHandler(api.Deps{
		Store:      store,
		Economic:   economicClient,
		Forecaster: forecaster,
		Predictor:  predictor,
		Engine:     engine,
		Scorer:     scorer,
		Planner:    planner,
		Alerts:     alertService,
		Config:     cfg,
		Logger:     logger,
	})

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(router, handler)

	go func() {
		logger.Infof("Starting server on port %s", cfg.Server.Port)
		if err := router.Run(":" + cfg.Server.Port); err != nil {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	refreshScheduler.Stop()
	batchProcessor.Stop()
	if err := indicatorQueue.Close(); err != nil {
		logger.WithError(err).Error("Failed to close indicator queue")
	}
}
