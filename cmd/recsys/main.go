package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"content-recsys/internal/api"
	"content-recsys/internal/api/handlers"
	"content-recsys/internal/ranker"
	"content-recsys/internal/repository"
	"content-recsys/internal/service"
	"content-recsys/internal/store"
	"content-recsys/pkg/config"
	"content-recsys/pkg/logger"
	"content-recsys/pkg/postgres"

	"go.uber.org/zap"
)

// @title Content RecSys API
// @version 1.0
// @description Personalized post recommendation inference service

// @host localhost:8000
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting content recsys service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, cfg.Database.URI, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	postRepo := repository.NewPostRepository(db, appLogger)
	userRepo := repository.NewUserRepository(db, appLogger)
	feedRepo := repository.NewFeedRepository(db, appLogger)

	// Load the immutable reference snapshot; no traffic is accepted until
	// every dataset is in memory.
	refStore, err := store.Load(ctx, postRepo, userRepo, feedRepo, repository.LikeCountCutoff, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load reference data", zap.Error(err))
	}

	// Load the pretrained classifier
	modelPath := cfg.Model.ResolvedPath()
	model, err := ranker.LoadModel(modelPath)
	if err != nil {
		appLogger.Fatal("Failed to load model", zap.String("path", modelPath), zap.Error(err))
	}
	appLogger.Info("Model loaded", zap.String("path", modelPath))

	// Initialize services and handlers
	rk := ranker.NewRanker(model, appLogger)
	recService := service.NewRecommendationService(refStore, rk, appLogger)
	recHandler := handlers.NewRecommendationHandler(recService, appLogger)

	// Setup router
	app := api.SetupRouter(recHandler, cfg.Server)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
