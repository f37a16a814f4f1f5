package models

import "time"

// EnvironmentReading is one sensor observation of the growing environment.
// The latest reading lives alone in environment_logs; the day-to-day trail
// accumulates in environment_history.
type EnvironmentReading struct {
	Temperature float64   `bson:"temperature"          json:"temperature"`
	Humidity    float64   `bson:"humidity"             json:"humidity"`
	AirQuality  string    `bson:"airQuality,omitempty" json:"airQuality,omitempty"`
	Timestamp   time.Time `bson:"timestamp"            json:"timestamp"`
}
