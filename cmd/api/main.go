package main

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rohanbuilds/jobprep/internal/auth"
	"github.com/rohanbuilds/jobprep/internal/config"
	"github.com/rohanbuilds/jobprep/internal/database"
	"github.com/rohanbuilds/jobprep/internal/handlers"
)

func main() {
	// .env is optional; in production everything comes from the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config: ", err)
	}

	logger, err := newLogger(cfg.API.Environment)
	if err != nil {
		log.Fatal("init logger: ", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.Database.DSN())
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	logger.Info("database connection established")

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	if err != nil {
		logger.Fatal("token service init failed", zap.Error(err))
	}

	if cfg.AI.APIKey == "" {
		logger.Warn("OPENAI_API_KEY not set, generation endpoints will serve deterministic fallback content")
	}

	r := handlers.NewRouter(cfg, db, tokens, logger)

	addr := fmt.Sprintf(":%d", cfg.API.Port)
	logger.Info("server starting", zap.String("addr", addr), zap.String("environment", cfg.API.Environment))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
