package main

import (
	"context"

	"agrosense/batch"
	"agrosense/store"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type App struct {
	cfg   Config
	mongo *mongo.Client
	db    *mongo.Database

	orders     *mongo.Collection
	products   *mongo.Collection
	dishes     *mongo.Collection
	envLatest  *mongo.Collection
	envHistory *mongo.Collection

	batches    *store.MongoBatchStore
	engine     *batch.Engine
	aggregator *batch.Aggregator
}

func newApp(ctx context.Context, cfg Config) (*App, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDB)

	batches := store.NewMongoBatchStore(db.Collection("batches"))
	orders := db.Collection("orders")

	app := &App{
		cfg:        cfg,
		mongo:      client,
		db:         db,
		orders:     orders,
		products:   db.Collection("products"),
		dishes:     db.Collection("dishes"),
		envLatest:  db.Collection("environment_logs"),
		envHistory: db.Collection("environment_history"),
		batches:    batches,
		engine:     batch.NewEngine(batches, nil),
		aggregator: batch.NewAggregator(batches, store.NewMongoOrderCounter(orders)),
	}

	if err := batches.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

func (a *App) close(ctx context.Context) { _ = a.mongo.Disconnect(ctx) }
