package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"agrosense/batch"

	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeEngineError maps the engine's error taxonomy to HTTP status codes:
// validation 400, not found 404, conflict 409, everything else 500.
func writeEngineError(w http.ResponseWriter, err error) {
	var verr *batch.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResp{Error: verr.Msg})
	case errors.Is(err, batch.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResp{Error: "batch not found"})
	case errors.Is(err, batch.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResp{Error: "batch with this ID already exists"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "internal error"})
	}
}

// handleCreateBatch registers a new cultivation batch. When the store is
// unreachable and degraded writes are allowed, it still answers 201 with a
// warning so field operators are not blocked by a dead database.
func (a *App) handleCreateBatch(w http.ResponseWriter, r *http.Request) {
	var req createBatchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "bad json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := a.engine.Create(ctx, req.BatchID, req.StartDate, req.GrowthDays)
	if err != nil {
		var serr *batch.StorageError
		if errors.As(err, &serr) && a.cfg.AllowDegradedWrites {
			log.Println("degraded create, storage unavailable:", serr)
			writeJSON(w, http.StatusCreated, createBatchResp{
				Message: "Cultivation batch created successfully",
				Warning: "storage unavailable; batch not persisted",
			})
			return
		}
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createBatchResp{
		Message: "Cultivation batch created successfully",
		Batch:   b,
	})
}

func (a *App) handleListBatches(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	out, err := a.engine.List(ctx)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := a.engine.Get(ctx, chi.URLParam(r, "batchId"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (a *App) handleUpdateBatch(w http.ResponseWriter, r *http.Request) {
	var req updateBatchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "bad json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := a.engine.Update(ctx, chi.URLParam(r, "batchId"), batch.Update{
		BatchID:    req.BatchID,
		StartDate:  req.StartDate,
		Status:     req.Status,
		Stage:      req.Stage,
		GrowthDays: req.GrowthDays,
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (a *App) handleDeleteBatch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := a.engine.Delete(ctx, chi.URLParam(r, "batchId")); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResp{Message: "Batch deleted successfully"})
}

func (a *App) handleTransitionStage(w http.ResponseWriter, r *http.Request) {
	var req stageReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "bad json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := a.engine.TransitionStage(ctx, chi.URLParam(r, "batchId"), req.Stage, req.Notes)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (a *App) handleLogMaintenance(w http.ResponseWriter, r *http.Request) {
	var req maintenanceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "bad json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := a.engine.LogMaintenance(ctx, chi.URLParam(r, "batchId"), req.Type, req.Value, req.Notes)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (a *App) handleRecordHarvest(w http.ResponseWriter, r *http.Request) {
	var req harvestReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "bad json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := a.engine.RecordHarvest(ctx, chi.URLParam(r, "batchId"), req.ActualYield, req.QualityScore, req.Notes)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (a *App) handleUpdateBatchEnvironment(w http.ResponseWriter, r *http.Request) {
	var req batchEnvReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "bad json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := a.engine.UpdateEnvironment(ctx, chi.URLParam(r, "batchId"), req.Temperature, req.Humidity, req.CO2Level, req.LightLevel)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
