package models

import "time"

// OrderStatus follows the fulfillment flow set by admins.
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "PLACED"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order is a customer order for farm produce.
type Order struct {
	CustomerName string      `bson:"customerName" json:"customerName"`
	Phone        string      `bson:"phone"        json:"phone"`
	Product      string      `bson:"product"      json:"product"`
	Quantity     int         `bson:"quantity"     json:"quantity"`
	Status       OrderStatus `bson:"status"       json:"status"`
	CreatedAt    time.Time   `bson:"createdAt"    json:"createdAt"`
}
