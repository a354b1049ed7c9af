// main.go
package main

import (
	"context"
	"log"

	"user-panel/cmd"
	"user-panel/internal/data/repository"
	"user-panel/internal/wire"
	"user-panel/pkg/database"
	"user-panel/pkg/storage"
	"user-panel/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Apply migrations when enabled
	if config.Database.Migrate {
		if err := database.Migrate(config.Database); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		logger.Info("Migrations applied")
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Object storage for user photos
	store, err := storage.NewMinioClient(config.Storage)
	if err != nil {
		logger.Fatal("Failed to init object storage", zap.Error(err))
	}
	if err := store.EnsureBucket(context.Background()); err != nil {
		logger.Fatal("Failed to ensure storage bucket", zap.Error(err))
	}

	logger.Info("Object storage ready", zap.String("bucket", store.Bucket()))

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, store, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
