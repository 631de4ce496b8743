package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tourbase/tours-api/internal/config"
)

const connectTimeout = 10 * time.Second

// Connect establishes and verifies a client connection for the configured
// database. The caller owns the returned client and must Disconnect it.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return client, nil
}
