package mongo

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/artie-labs/partitioner/config"
	"github.com/artie-labs/partitioner/lib"
	"github.com/artie-labs/partitioner/sources"
)

const (
	pingBaseMs   = 500
	pingMaxMs    = 5_000
	pingAttempts = 3
)

type Source struct {
	cfg    config.MongoDB
	client *mongo.Client
	db     *mongo.Database
}

func Load(ctx context.Context, cfg config.MongoDB) (*Source, error) {
	creds := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}

	opts := options.Client().ApplyURI(cfg.Host).SetAuth(creds)
	if !cfg.DisableTLS {
		opts = opts.SetTLSConfig(&tls.Config{})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	_, err = lib.WithJitteredRetries(ctx, pingBaseMs, pingMaxMs, pingAttempts, func(_ int) (any, error) {
		return nil, client.Ping(ctx, readpref.Primary())
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to ping MongoDB: %w", err), client.Disconnect(ctx))
	}

	return &Source{
		cfg:    cfg,
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

func (s *Source) Close() error {
	return s.client.Disconnect(context.Background())
}

func (s *Source) Run(ctx context.Context, writer sources.RecordWriter) error {
	for _, collection := range s.cfg.Collections {
		start := time.Now()
		records, err := s.readCollection(ctx, collection)
		if err != nil {
			return fmt.Errorf("failed to read collection %s: %w", collection.Name, err)
		}

		count, err := writer.Write(ctx, records)
		if err != nil {
			return fmt.Errorf("failed to write collection %s: %w", collection.Name, err)
		}

		slog.Info("Finished reading collection",
			slog.String("collection", collection.Name),
			slog.Int("records", count),
			slog.Duration("duration", time.Since(start)),
		)
	}
	return nil
}

func (s *Source) readCollection(ctx context.Context, collection config.Collection) ([]lib.Record, error) {
	findOptions := options.Find()
	if collection.Limit > 0 {
		findOptions.SetLimit(collection.Limit)
	}

	cursor, err := s.db.Collection(collection.Name).Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to find documents: %w", err)
	}
	defer cursor.Close(ctx)

	var records []lib.Record
	for cursor.Next(ctx) {
		var doc bson.M
		if err = cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}

		record, err := toRecord(collection.Name, doc)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, cursor.Err()
}

// toRecord converts a document into relaxed extended JSON and keys it by its _id.
func toRecord(collection string, doc bson.M) (lib.Record, error) {
	id, isOk := doc["_id"]
	if !isOk {
		return lib.Record{}, fmt.Errorf("failed to get partition key, row: %v", doc)
	}

	bytes, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return lib.Record{}, fmt.Errorf("failed to marshal document to JSON extended: %w", err)
	}

	var payload map[string]any
	if err = json.Unmarshal(bytes, &payload); err != nil {
		return lib.Record{}, fmt.Errorf("failed to unmarshal JSON extended to map: %w", err)
	}

	key := map[string]any{"_id": payload["_id"]}
	if objectID, isOk := id.(primitive.ObjectID); isOk {
		key["_id"] = objectID.Hex()
	}

	return lib.NewRecord(collection, key, payload), nil
}
