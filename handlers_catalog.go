package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"agrosense/models"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// catalogHandlers serves one catalog collection. Products and dishes share
// a shape, so both mount the same handler set over their own collection.
type catalogHandlers struct {
	col  *mongo.Collection
	kind string
}

func (a *App) catalog(col *mongo.Collection, kind string) *catalogHandlers {
	return &catalogHandlers{col: col, kind: kind}
}

func (h *catalogHandlers) mount(r chi.Router, path string) {
	r.Route(path, func(cr chi.Router) {
		cr.Get("/", h.handleList)
		cr.Post("/", h.handleCreate)
		cr.Put("/{id}", h.handleUpdate)
		cr.Delete("/{id}", h.handleDelete)
	})
}

func (h *catalogHandlers) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	cur, err := h.col.Find(ctx, bson.M{})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "db error"})
		return
	}
	defer cur.Close(ctx)

	out := []models.CatalogItem{}
	if err := cur.All(ctx, &out); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "decode error"})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *catalogHandlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Price       *float64 `json:"price"`
		Unit        string   `json:"unit"`
		Image       string   `json:"image"`
		Features    []string `json:"features"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "bad json"})
		return
	}
	if req.ID == "" || req.Name == "" || req.Description == "" || req.Price == nil || req.Unit == "" || req.Image == "" || len(req.Features) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "id, name, description, price, unit, image and features are required"})
		return
	}
	item := models.CatalogItem{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Unit:        req.Unit,
		Image:       req.Image,
		Features:    req.Features,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.col.FindOne(ctx, bson.M{"id": item.ID}).Err(); err == nil {
		writeJSON(w, http.StatusConflict, errorResp{Error: fmt.Sprintf("%s with this ID already exists", h.kind)})
		return
	}
	if _, err := h.col.InsertOne(ctx, &item); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "db error"})
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *catalogHandlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string   `json:"name,omitempty"`
		Description *string   `json:"description,omitempty"`
		Price       *float64  `json:"price,omitempty"`
		Unit        *string   `json:"unit,omitempty"`
		Image       *string   `json:"image,omitempty"`
		Features    *[]string `json:"features,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "bad json"})
		return
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.Unit != nil {
		set["unit"] = *req.Unit
	}
	if req.Image != nil {
		set["image"] = *req.Image
	}
	if req.Features != nil {
		set["features"] = *req.Features
	}
	if len(set) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "nothing to update"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.col.UpdateOne(ctx, bson.M{"id": chi.URLParam(r, "id")}, bson.M{"$set": set})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "db error"})
		return
	}
	if res.MatchedCount == 0 {
		writeJSON(w, http.StatusNotFound, errorResp{Error: fmt.Sprintf("%s not found", h.kind)})
		return
	}
	writeJSON(w, http.StatusOK, messageResp{Message: fmt.Sprintf("%s updated successfully", h.kind)})
}

func (h *catalogHandlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.col.DeleteOne(ctx, bson.M{"id": chi.URLParam(r, "id")})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "db error"})
		return
	}
	if res.DeletedCount == 0 {
		writeJSON(w, http.StatusNotFound, errorResp{Error: fmt.Sprintf("%s not found", h.kind)})
		return
	}
	writeJSON(w, http.StatusOK, messageResp{Message: fmt.Sprintf("%s deleted successfully", h.kind)})
}
