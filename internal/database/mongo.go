// ================== internal/database/mongo.go ==================
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Config represents database configuration
type Config struct {
	URI            string
	DBName         string
	MaxPool        uint64
	MinPool        uint64
	ConnectTimeout time.Duration
	// Total time spent retrying the initial ping before giving up.
	MaxElapsed time.Duration
}

// DefaultConfig returns default database configuration
func DefaultConfig(uri, dbName string) Config {
	return Config{
		URI:            uri,
		DBName:         dbName,
		MaxPool:        100,
		MinPool:        5,
		ConnectTimeout: 10 * time.Second,
		MaxElapsed:     time.Minute,
	}
}

// Connect dials mongo and retries the first ping with exponential backoff so
// the API can start alongside the database container.
func Connect(ctx context.Context, cfg Config, log *zap.Logger) (*MongoDB, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)
	clientOptions.SetMaxPoolSize(cfg.MaxPool)
	clientOptions.SetMinPoolSize(cfg.MinPool)
	clientOptions.SetMaxConnIdleTime(30 * time.Second)
	clientOptions.SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.MaxElapsedTime = cfg.MaxElapsed

	ping := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
		return client.Ping(pingCtx, readpref.Primary())
	}
	notify := func(err error, wait time.Duration) {
		log.Warn("MongoDB not ready, retrying", zap.Error(err), zap.Duration("wait", wait))
	}

	if err := backoff.RetryNotify(ping, backoff.WithContext(expBackoff, ctx), notify); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoDB{
		Client:   client,
		Database: client.Database(cfg.DBName),
	}, nil
}

// Ping checks if the database is accessible
func (m *MongoDB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, readpref.Primary())
}

func (m *MongoDB) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
