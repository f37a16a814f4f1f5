package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"agrosense/models"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (a *App) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "bad json"})
		return
	}
	if req.CustomerName == "" || req.Phone == "" || req.Product == "" || req.Quantity <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "customerName, phone, product and a positive quantity are required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order := models.Order{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Product:      req.Product,
		Quantity:     req.Quantity,
		Status:       models.OrderStatusPlaced,
		CreatedAt:    time.Now(),
	}
	if _, err := a.orders.InsertOne(ctx, &order); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "db error"})
		return
	}
	writeJSON(w, http.StatusCreated, messageResp{Message: "Order placed successfully"})
}

func (a *App) handleListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	cur, err := a.orders.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "db error"})
		return
	}
	defer cur.Close(ctx)

	out := []models.Order{}
	if err := cur.All(ctx, &out); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "decode error"})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// handleUpdateOrderStatus moves an order along the fulfillment flow. Orders
// are keyed by customerName+product, as placed by the storefront.
func (a *App) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req orderStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "bad json"})
		return
	}
	if req.CustomerName == "" || req.Product == "" || req.Status == "" {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "customerName, product and status are required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := a.orders.UpdateOne(ctx,
		bson.M{"customerName": req.CustomerName, "product": req.Product},
		bson.M{"$set": bson.M{"status": req.Status}},
	)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "db error"})
		return
	}
	if res.MatchedCount == 0 {
		writeJSON(w, http.StatusNotFound, errorResp{Error: "order not found"})
		return
	}
	writeJSON(w, http.StatusOK, messageResp{Message: "Order status updated"})
}

func (a *App) handleTrackOrders(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phone")

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	cur, err := a.orders.Find(ctx, bson.M{"phone": phone})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "db error"})
		return
	}
	defer cur.Close(ctx)

	out := []models.Order{}
	if err := cur.All(ctx, &out); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "decode error"})
		return
	}
	writeJSON(w, http.StatusOK, out)
}
