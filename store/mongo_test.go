package store

import (
	"context"
	"errors"
	"testing"

	"agrosense/batch"
	"agrosense/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoBatchStore_Insert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate key maps to conflict", func(mt *mtest.T) {
		s := NewMongoBatchStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := s.Insert(context.Background(), &models.Batch{BatchID: "B1"})
		require.ErrorIs(t, err, batch.ErrConflict)
	})

	mt.Run("other write failures wrap as storage errors", func(mt *mtest.T) {
		s := NewMongoBatchStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    121,
			Message: "document failed validation",
		}))

		err := s.Insert(context.Background(), &models.Batch{BatchID: "B1"})
		var serr *batch.StorageError
		require.True(t, errors.As(err, &serr))
		assert.NotErrorIs(t, err, batch.ErrConflict)
	})
}

func TestMongoBatchStore_UpdateFields(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("reports matched count", func(mt *mtest.T) {
		s := NewMongoBatchStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		matched, err := s.UpdateFields(context.Background(), "B1", map[string]any{"growthDays": 30})
		require.NoError(t, err)
		assert.Equal(t, int64(1), matched)
	})

	mt.Run("rename onto a taken batchId maps to conflict", func(mt *mtest.T) {
		s := NewMongoBatchStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := s.UpdateFields(context.Background(), "B1", map[string]any{"batchId": "B2"})
		require.ErrorIs(t, err, batch.ErrConflict)
	})
}

func TestMongoBatchStore_FindByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing batch maps to not found", func(mt *mtest.T) {
		s := NewMongoBatchStore(mt.Coll)
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := s.FindByID(context.Background(), "ghost")
		require.ErrorIs(t, err, batch.ErrNotFound)
	})

	mt.Run("decodes the stored batch", func(mt *mtest.T) {
		s := NewMongoBatchStore(mt.Coll)
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "batchId", Value: "B1"},
			{Key: "startDate", Value: "2024-01-01"},
			{Key: "growthDays", Value: 90},
			{Key: "status", Value: "ACTIVE"},
		}))

		b, err := s.FindByID(context.Background(), "B1")
		require.NoError(t, err)
		assert.Equal(t, "B1", b.BatchID)
		assert.Equal(t, 90, b.GrowthDays)
		assert.Equal(t, models.BatchStatusActive, b.Status)
	})
}
