package main

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tourbase/tours-api/internal/config"
	"github.com/tourbase/tours-api/internal/platform/logger"
	"github.com/tourbase/tours-api/internal/platform/mongodb"
	"github.com/tourbase/tours-api/internal/service/auth"
	"github.com/tourbase/tours-api/internal/store"
)

// application holds the wired dependencies of a running server instance.
type application struct {
	config *config.Config
	logger *slog.Logger

	mongoClient *mongo.Client
	tourStore   store.TourStore
	userStore   store.UserStore
	jwtService  auth.JWTService
	hasher      *auth.BcryptHasher
}

// newApplication loads configuration, connects to the database, and wires
// every service the router needs. The caller must run cleanup when done.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database", cfg.Database.Name)

	client, err := mongodb.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.Database.Name)

	tourStore, err := mongodb.NewTourStore(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tour store: %w", err)
	}
	userStore, err := mongodb.NewUserStore(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize user store: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      log,
		mongoClient: client,
		tourStore:   tourStore,
		userStore:   userStore,
		jwtService:  jwtService,
		hasher:      auth.NewBcryptHasher(cfg.Auth.BcryptCost),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()

	if err := app.mongoClient.Disconnect(ctx); err != nil {
		app.logger.Error("failed to disconnect from database", "error", err)
	}
}
