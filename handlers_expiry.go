package main

import (
	"context"
	"net/http"
	"time"
)

// handleCheckExpiry partitions the fleet into expired and expiring-soon
// buckets against the current clock.
func (a *App) handleCheckExpiry(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	report, err := a.engine.CheckExpiry(ctx, time.Now())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
