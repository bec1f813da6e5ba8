package infra

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names of the document store.
const (
	CollNotificaciones = "notifications"
	CollSignupTokens   = "bank_signup_tokens"
	CollCuentas        = "cuentas"
	CollSolicitudes    = "solicitudes"
	CollPropuestas     = "propuestas"
)

// NewMongo connects to MongoDB, validates connectivity and makes sure the
// indexes the repositories rely on exist.
func NewMongo(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Embedded documents in notification payloads decode as maps, not bson.D,
	// so they serialise to plain JSON objects.
	opts := options.Client().ApplyURI(uri).SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(dbName)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return db, nil
}

// EnsureIndexes is idempotent: CreateMany is a no-op for indexes that already
// exist with the same definition.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		CollNotificaciones: {
			{Keys: bson.D{{Key: "recipientId", Value: 1}, {Key: "read", Value: 1}}},
			{Keys: bson.D{{Key: "recipientId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		// One document per token value; consume relies on it.
		CollSignupTokens: {
			{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollCuentas: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
			{Keys: bson.D{{Key: "Empresa_id", Value: 1}}},
		},
		CollPropuestas: {
			{Keys: bson.D{{Key: "solicitudId", Value: 1}}},
		},
	}
	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongo indexes %s: %w", coll, err)
		}
	}
	return nil
}
