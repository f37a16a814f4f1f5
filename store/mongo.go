// Package store provides the MongoDB implementations of the persistence
// contracts consumed by the batch package.
package store

import (
	"context"
	"errors"
	"fmt"

	"agrosense/batch"
	"agrosense/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBatchStore persists batches in a single collection. Field updates go
// through $set and log appends through $push, so concurrent writers on one
// batch never lose maintenance entries.
type MongoBatchStore struct {
	col *mongo.Collection
}

// NewMongoBatchStore wraps the batches collection.
func NewMongoBatchStore(col *mongo.Collection) *MongoBatchStore {
	return &MongoBatchStore{col: col}
}

// EnsureIndexes creates the unique batchId index that backs conflict
// detection, plus a createdAt index for listings.
func (s *MongoBatchStore) EnsureIndexes(ctx context.Context) error {
	if _, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "batchId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("batchId index: %w", err)
	}
	if _, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	}); err != nil {
		return fmt.Errorf("createdAt index: %w", err)
	}
	return nil
}

func (s *MongoBatchStore) Insert(ctx context.Context, b *models.Batch) error {
	if _, err := s.col.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", batch.ErrConflict, b.BatchID)
		}
		return &batch.StorageError{Err: err}
	}
	return nil
}

func (s *MongoBatchStore) FindByID(ctx context.Context, batchID string) (*models.Batch, error) {
	var b models.Batch
	if err := s.col.FindOne(ctx, bson.M{"batchId": batchID}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, batch.ErrNotFound
		}
		return nil, &batch.StorageError{Err: err}
	}
	return &b, nil
}

func (s *MongoBatchStore) FindAll(ctx context.Context) ([]models.Batch, error) {
	cur, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, &batch.StorageError{Err: err}
	}
	defer cur.Close(ctx)

	var out []models.Batch
	if err := cur.All(ctx, &out); err != nil {
		return nil, &batch.StorageError{Err: err}
	}
	return out, nil
}

func (s *MongoBatchStore) UpdateFields(ctx context.Context, batchID string, fields map[string]any) (int64, error) {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"batchId": batchID}, bson.M{"$set": set})
	if err != nil {
		// A batchId rename can collide with the unique index.
		if mongo.IsDuplicateKeyError(err) {
			return 0, fmt.Errorf("%w: %s", batch.ErrConflict, batchID)
		}
		return 0, &batch.StorageError{Err: err}
	}
	return res.MatchedCount, nil
}

func (s *MongoBatchStore) PushLog(ctx context.Context, batchID string, entry models.MaintenanceLog) (int64, error) {
	res, err := s.col.UpdateOne(ctx, bson.M{"batchId": batchID}, bson.M{
		"$push": bson.M{"maintenanceLogs": entry},
	})
	if err != nil {
		return 0, &batch.StorageError{Err: err}
	}
	return res.MatchedCount, nil
}

func (s *MongoBatchStore) Delete(ctx context.Context, batchID string) (int64, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{"batchId": batchID})
	if err != nil {
		return 0, &batch.StorageError{Err: err}
	}
	return res.DeletedCount, nil
}

func (s *MongoBatchStore) Count(ctx context.Context) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, &batch.StorageError{Err: err}
	}
	return n, nil
}

// MongoOrderCounter exposes the orders collection's document count to the
// dashboard aggregator.
type MongoOrderCounter struct {
	col *mongo.Collection
}

// NewMongoOrderCounter wraps the orders collection.
func NewMongoOrderCounter(col *mongo.Collection) *MongoOrderCounter {
	return &MongoOrderCounter{col: col}
}

func (c *MongoOrderCounter) Count(ctx context.Context) (int64, error) {
	n, err := c.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, &batch.StorageError{Err: err}
	}
	return n, nil
}
