package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/stelae-dev/stelae/db"
	"github.com/stelae-dev/stelae/internal/auth"
	"github.com/stelae-dev/stelae/internal/config"
	"github.com/stelae-dev/stelae/internal/logger"
	"github.com/stelae-dev/stelae/internal/router"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := auth.Init(cfg.JWT.Secret, cfg.TokenTTL()); err != nil {
		logger.Fatal("Failed to initialize token service", zap.Error(err))
	}

	if err := db.ConnectDatabase(cfg.Database.Driver, cfg.Database.DSN); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.MigrateDatabase(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	r := router.NewRouter(cfg.CORS.AllowedOrigins)

	logger.Info("Starting server", zap.String("port", cfg.Port))

	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
