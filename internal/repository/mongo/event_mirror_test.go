package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"saferail/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeCollection struct {
	docs []interface{}
	err  error
}

func (f *fakeCollection) InsertOne(_ context.Context, doc interface{}, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.docs = append(f.docs, doc)
	return &mongo.InsertOneResult{InsertedID: len(f.docs)}, nil
}

func TestEventMirror_Append(t *testing.T) {
	coll := &fakeCollection{}
	m := &EventMirror{coll: coll}

	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := m.Append(context.Background(), models.Event{Username: "priya", Type: models.EventSOS, OccurredAt: at}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if len(coll.docs) != 1 {
		t.Fatalf("want 1 doc, got %d", len(coll.docs))
	}
	doc := coll.docs[0].(bson.M)
	if doc["username"] != "priya" || doc["event"] != "SOS" || doc["timestamp"] != at {
		t.Fatalf("unexpected document: %v", doc)
	}
}

func TestEventMirror_AppendError(t *testing.T) {
	m := &EventMirror{coll: &fakeCollection{err: errors.New("no primary")}}
	if err := m.Append(context.Background(), models.Event{Type: models.EventLogin}); err == nil {
		t.Fatalf("expected error")
	}
}
