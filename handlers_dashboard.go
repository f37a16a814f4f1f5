package main

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"agrosense/batch"
)

func (a *App) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	summary, err := a.aggregator.Summarize(ctx, time.Now())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleShelfLife runs the temperature/humidity calculator on caller-supplied
// conditions.
func (a *App) handleShelfLife(w http.ResponseWriter, r *http.Request) {
	temp, err := strconv.ParseFloat(r.URL.Query().Get("temperature"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "temperature is required"})
		return
	}
	humidity, err := strconv.ParseFloat(r.URL.Query().Get("humidity"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "humidity is required"})
		return
	}
	writeJSON(w, http.StatusOK, batch.ComputeShelfLife(temp, humidity, time.Now()))
}
