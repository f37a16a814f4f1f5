package models

import "time"

// BatchStatus is the persisted administrative status of a batch. It is
// distinct from the freshness classification derived on read.
type BatchStatus string

const (
	BatchStatusActive    BatchStatus = "ACTIVE"
	BatchStatusSafe      BatchStatus = "SAFE"
	BatchStatusWarning   BatchStatus = "WARNING"
	BatchStatusExpired   BatchStatus = "EXPIRED"
	BatchStatusCompleted BatchStatus = "COMPLETED"
)

// ValidBatchStatus reports whether s is one of the five persisted statuses.
func ValidBatchStatus(s BatchStatus) bool {
	switch s {
	case BatchStatusActive, BatchStatusSafe, BatchStatusWarning, BatchStatusExpired, BatchStatusCompleted:
		return true
	}
	return false
}

// Stage is the cultivation phase, administratively set.
type Stage string

const (
	StageSpawn      Stage = "SPAWN"
	StageIncubation Stage = "INCUBATION"
	StageFruiting   Stage = "FRUITING"
	StageHarvest    Stage = "HARVEST"
	StageCompleted  Stage = "COMPLETED"
)

// ValidStage reports whether s is one of the five named stages.
func ValidStage(s Stage) bool {
	switch s {
	case StageSpawn, StageIncubation, StageFruiting, StageHarvest, StageCompleted:
		return true
	}
	return false
}

// LogType tags a maintenance-log entry.
type LogType string

const (
	LogTypeStageUpdate LogType = "stage_update"
	LogTypeMaintenance LogType = "maintenance"
	LogTypeHarvest     LogType = "harvest"
)

// Batch — one cultivation run from spawn to harvest/expiry.
// Calendar dates (startDate, harvestDate, expiryDate) are stored as
// YYYY-MM-DD strings, matching the wire format.
type Batch struct {
	BatchID     string      `bson:"batchId"               json:"batchId"`
	StartDate   string      `bson:"startDate"             json:"startDate"`
	GrowthDays  int         `bson:"growthDays"            json:"growthDays"`
	HarvestDate string      `bson:"harvestDate,omitempty" json:"harvestDate,omitempty"`
	ExpiryDate  string      `bson:"expiryDate"            json:"expiryDate"`
	Status      BatchStatus `bson:"status"                json:"status"`
	Stage       Stage       `bson:"stage,omitempty"       json:"stage,omitempty"`

	CurrentEnvironment *EnvironmentSnapshot `bson:"currentEnvironment,omitempty" json:"currentEnvironment,omitempty"`
	MaintenanceLogs    []MaintenanceLog     `bson:"maintenanceLogs,omitempty"    json:"maintenanceLogs,omitempty"`

	ActualYield  *float64 `bson:"actualYield,omitempty"  json:"actualYield,omitempty"`
	QualityScore *float64 `bson:"qualityScore,omitempty" json:"qualityScore,omitempty"`

	CreatedAt   time.Time `bson:"createdAt"             json:"createdAt"`
	LastUpdated time.Time `bson:"lastUpdated,omitempty" json:"lastUpdated,omitempty"`
}

// MaintenanceLog is one entry of a batch's append-only audit trail.
type MaintenanceLog struct {
	Timestamp time.Time `bson:"timestamp"       json:"timestamp"`
	Action    string    `bson:"action"          json:"action"`
	Type      LogType   `bson:"type"            json:"type"`
	Value     string    `bson:"value,omitempty" json:"value,omitempty"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
}

// EnvironmentSnapshot is the last-known growing-room state of a batch,
// overwritten in place on each update. Not an audit record.
type EnvironmentSnapshot struct {
	Temperature float64   `bson:"temperature"          json:"temperature"`
	Humidity    float64   `bson:"humidity"             json:"humidity"`
	CO2Level    *float64  `bson:"co2Level,omitempty"   json:"co2Level,omitempty"`
	LightLevel  *float64  `bson:"lightLevel,omitempty" json:"lightLevel,omitempty"`
	RecordedAt  time.Time `bson:"recordedAt"           json:"recordedAt"`
}
