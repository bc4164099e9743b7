// Package mongo provides the MongoDB-backed credential and task stores.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// opTimeout bounds every repository operation.
const opTimeout = 10 * time.Second

const connectTimeout = 15 * time.Second

// Config locates the deployment holding the users and tasks collections.
type Config struct {
	URI      string
	Database string
}

// Connect dials the deployment and pings the primary so a bad address or
// credential fails at startup rather than on the first request. It returns
// the client for lifecycle management alongside the service database handle.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
