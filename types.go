package main

import (
	"time"

	"agrosense/models"
)

// Request/response DTOs. Keep them minimal and explicit.

type createBatchReq struct {
	BatchID    string `json:"batchId"`
	StartDate  string `json:"startDate"`
	GrowthDays *int   `json:"growthDays,omitempty"`
}

type createBatchResp struct {
	Message string        `json:"message"`
	Batch   *models.Batch `json:"batch,omitempty"`
	Warning string        `json:"warning,omitempty"`
}

type updateBatchReq struct {
	BatchID    *string             `json:"batchId,omitempty"`
	StartDate  *string             `json:"startDate,omitempty"`
	Status     *models.BatchStatus `json:"status,omitempty"`
	Stage      *models.Stage       `json:"stage,omitempty"`
	GrowthDays *int                `json:"growthDays,omitempty"`
}

type stageReq struct {
	Stage models.Stage `json:"stage"`
	Notes string       `json:"notes,omitempty"`
}

type maintenanceReq struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
	Notes string `json:"notes,omitempty"`
}

type harvestReq struct {
	ActualYield  *float64 `json:"actualYield"`
	QualityScore *float64 `json:"qualityScore,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

type batchEnvReq struct {
	Temperature float64  `json:"temperature"`
	Humidity    float64  `json:"humidity"`
	CO2Level    *float64 `json:"co2Level,omitempty"`
	LightLevel  *float64 `json:"lightLevel,omitempty"`
}

type ingestEnvReq struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	AirQuality  string  `json:"airQuality,omitempty"`
}

type createOrderReq struct {
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Product      string `json:"product"`
	Quantity     int    `json:"quantity"`
}

type orderStatusReq struct {
	CustomerName string             `json:"customerName"`
	Product      string             `json:"product"`
	Status       models.OrderStatus `json:"status"`
}

type dailyTemperature struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
}

type errorResp struct {
	Error string `json:"error"`
}

type messageResp struct {
	Message string `json:"message"`
}
