package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orsched/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "ScheduleSnapshots"

	// snapshotKey is the _id of the single snapshot document. The whole
	// booking set lives in one document, mirroring the opaque-blob contract.
	snapshotKey = "surgery_schedules"
)

type snapshotDoc struct {
	ID        string          `bson:"_id"`
	Bookings  []model.Booking `bson:"bookings"`
	UpdatedAt time.Time       `bson:"updated_at"`
}

// MongoStorage keeps the snapshot as one document in a MongoDB collection.
type MongoStorage struct {
	collection   *mongo.Collection
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewMongoStorage(client *mongo.Client, database string, readTimeout, writeTimeout time.Duration) *MongoStorage {
	return &MongoStorage{
		collection:   client.Database(database).Collection(CollectionName),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func (s *MongoStorage) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func (s *MongoStorage) Load(ctx context.Context) ([]model.Booking, error) {
	ctx, cancel := s.withTimeout(ctx, s.readTimeout)
	defer cancel()

	var doc snapshotDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": snapshotKey}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	return doc.Bookings, nil
}

func (s *MongoStorage) Save(ctx context.Context, bookings []model.Booking) error {
	ctx, cancel := s.withTimeout(ctx, s.writeTimeout)
	defer cancel()

	doc := snapshotDoc{
		ID:        snapshotKey,
		Bookings:  bookings,
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": snapshotKey}, doc, opts); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

func (s *MongoStorage) Clear(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx, s.writeTimeout)
	defer cancel()

	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": snapshotKey}); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	return nil
}
