package main

import (
	"encoding/json"
	"net/http"
	"testing"

	"agrosense/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const productsColl = "products"

func newCatalogApp(mt *mtest.T) *App {
	db := mt.Client.Database(envDBName)
	return &App{
		products: db.Collection(productsColl),
		dishes:   db.Collection("dishes"),
	}
}

func productDoc(id, name string) bson.D {
	return bson.D{
		{Key: "id", Value: id},
		{Key: "name", Value: name},
		{Key: "description", Value: "fresh oyster mushrooms"},
		{Key: "price", Value: 12.5},
		{Key: "unit", Value: "kg"},
		{Key: "image", Value: "oyster.jpg"},
		{Key: "features", Value: bson.A{"organic"}},
	}
}

const validProductJSON = `{
	"id": "p1",
	"name": "Oyster",
	"description": "fresh oyster mushrooms",
	"price": 12.5,
	"unit": "kg",
	"image": "oyster.jpg",
	"features": ["organic"]
}`

func TestHandleCatalogCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	productsNS := envDBName + "." + productsColl

	mt.Run("created", func(mt *mtest.T) {
		app := newCatalogApp(mt)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, productsNS, mtest.FirstBatch), // no existing item
			mtest.CreateSuccessResponse(),
		)

		rec := doRequest(app, http.MethodPost, "/api/products", validProductJSON)
		require.Equal(t, http.StatusCreated, rec.Code)

		var item models.CatalogItem
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&item))
		assert.Equal(t, "p1", item.ID)
		assert.Equal(t, 12.5, item.Price)
	})

	mt.Run("duplicate id conflicts", func(mt *mtest.T) {
		app := newCatalogApp(mt)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, productsNS, mtest.FirstBatch, productDoc("p1", "Oyster")),
		)

		rec := doRequest(app, http.MethodPost, "/api/products", validProductJSON)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	mt.Run("missing price rejected", func(mt *mtest.T) {
		app := newCatalogApp(mt)

		body := `{"id":"p1","name":"Oyster","description":"fresh","unit":"kg","image":"oyster.jpg","features":["organic"]}`
		rec := doRequest(app, http.MethodPost, "/api/products", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errorResp
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Contains(t, resp.Error, "price")
	})

	mt.Run("missing features rejected", func(mt *mtest.T) {
		app := newCatalogApp(mt)

		body := `{"id":"p1","name":"Oyster","description":"fresh","price":12.5,"unit":"kg","image":"oyster.jpg"}`
		rec := doRequest(app, http.MethodPost, "/api/products", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleCatalogUpdate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("updated", func(mt *mtest.T) {
		app := newCatalogApp(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		rec := doRequest(app, http.MethodPut, "/api/products/p1", `{"price":14.0}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	mt.Run("missing item is 404", func(mt *mtest.T) {
		app := newCatalogApp(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		rec := doRequest(app, http.MethodPut, "/api/products/ghost", `{"price":14.0}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	mt.Run("empty patch rejected", func(mt *mtest.T) {
		app := newCatalogApp(mt)

		rec := doRequest(app, http.MethodPut, "/api/products/p1", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleCatalogDelete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing item is 404", func(mt *mtest.T) {
		app := newCatalogApp(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		rec := doRequest(app, http.MethodDelete, "/api/products/ghost", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
