package main

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"time"

	"agrosense/batch"
	"agrosense/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// lastTodayReading returns today's most recent history record, if any.
func (a *App) lastTodayReading(ctx context.Context) (*models.EnvironmentReading, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var last models.EnvironmentReading
	err := a.envHistory.FindOne(ctx,
		bson.M{"timestamp": bson.M{"$gte": dayStart}},
		options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}}),
	).Decode(&last)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &last, nil
}

// handleIngestEnvironment stores a sensor reading: the latest snapshot is
// replaced, and history gains a record only when the temperature moved
// since today's last one.
func (a *App) handleIngestEnvironment(w http.ResponseWriter, r *http.Request) {
	var req ingestEnvReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "bad json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	reading := models.EnvironmentReading{
		Temperature: req.Temperature,
		Humidity:    req.Humidity,
		AirQuality:  req.AirQuality,
		Timestamp:   time.Now(),
	}

	// Keep only the latest snapshot.
	if _, err := a.envLatest.DeleteMany(ctx, bson.M{}); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "db error"})
		return
	}
	if _, err := a.envLatest.InsertOne(ctx, &reading); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "db error"})
		return
	}

	last, err := a.lastTodayReading(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "db error"})
		return
	}
	if last == nil || last.Temperature != reading.Temperature {
		if _, err := a.envHistory.InsertOne(ctx, &reading); err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResp{Error: "db error"})
			return
		}
	}
	writeJSON(w, http.StatusCreated, reading)
}

// handleGetEnvironment returns the latest reading together with the
// shelf-life estimate derived from it.
func (a *App) handleGetEnvironment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var reading models.EnvironmentReading
	err := a.envLatest.FindOne(ctx, bson.M{}).Decode(&reading)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			writeJSON(w, http.StatusOK, map[string]any{
				"hasData":    false,
				"airQuality": "UNKNOWN",
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "db error"})
		return
	}

	shelf := batch.ComputeShelfLife(reading.Temperature, reading.Humidity, time.Now())
	writeJSON(w, http.StatusOK, map[string]any{
		"hasData":     true,
		"temperature": reading.Temperature,
		"humidity":    reading.Humidity,
		"airQuality":  reading.AirQuality,
		"timestamp":   reading.Timestamp,
		"shelfLife":   shelf,
	})
}

func (a *App) handleEnvironmentHistory24h(w http.ResponseWriter, r *http.Request) {
	since := time.Now().Add(-24 * time.Hour)
	a.writeHistorySince(w, r, since)
}

// handleEnvironmentHistoryToday returns today's readings in time order.
func (a *App) handleEnvironmentHistoryToday(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	a.writeHistorySince(w, r, dayStart)
}

func (a *App) writeHistorySince(w http.ResponseWriter, r *http.Request, since time.Time) {
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	cur, err := a.envHistory.Find(ctx,
		bson.M{"timestamp": bson.M{"$gte": since}},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}),
	)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "db error"})
		return
	}
	defer cur.Close(ctx)

	out := []models.EnvironmentReading{}
	if err := cur.All(ctx, &out); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "decode error"})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// handleEnvironmentHistoryWeekly returns one average temperature per day for
// the current week, anchored on Sunday. Days without readings average to 0.
func (a *App) handleEnvironmentHistoryWeekly(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	now := time.Now()
	daysSinceSunday := int(now.Weekday())
	sunday := now.AddDate(0, 0, -daysSinceSunday)
	sundayStart := time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 0, 0, 0, 0, now.Location())

	cur, err := a.envHistory.Find(ctx, bson.M{"timestamp": bson.M{"$gte": sundayStart}})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "db error"})
		return
	}
	defer cur.Close(ctx)

	var history []models.EnvironmentReading
	if err := cur.All(ctx, &history); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "decode error"})
		return
	}

	daily := map[string][]float64{}
	for _, rec := range history {
		key := rec.Timestamp.Format("2006-01-02")
		daily[key] = append(daily[key], rec.Temperature)
	}

	out := make([]dailyTemperature, 0, 7)
	for i := 0; i < 7; i++ {
		day := sundayStart.AddDate(0, 0, i)
		temps := daily[day.Format("2006-01-02")]
		avg := 0.0
		if len(temps) > 0 {
			for _, t := range temps {
				avg += t
			}
			avg /= float64(len(temps))
		}
		out = append(out, dailyTemperature{
			Timestamp:   day,
			Temperature: math.Round(avg*100) / 100,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
