// Package mongo mirrors audit events into a MongoDB collection.
package mongo

import (
	"context"
	"fmt"
	"time"

	"saferail/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect establishes a connection and pings the deployment.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

type inserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// EventMirror writes {username, event, timestamp} documents.
type EventMirror struct {
	coll inserter
}

func NewEventMirror(client *mongo.Client, database, collection string) *EventMirror {
	return &EventMirror{coll: client.Database(database).Collection(collection)}
}

// Document is the stored shape.
func Document(e models.Event) bson.M {
	ts := e.OccurredAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return bson.M{
		"username":  e.Username,
		"event":     e.Type,
		"timestamp": ts,
	}
}

func (m *EventMirror) Append(ctx context.Context, e models.Event) error {
	if _, err := m.coll.InsertOne(ctx, Document(e)); err != nil {
		return fmt.Errorf("mirror event %s: %w", e.Type, err)
	}
	return nil
}
