package main

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.yaml
var openapiYAML []byte

// routes wires middlewares and endpoints. Adjust CORS for your frontend hosts.
func (a *App) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000", "https://*.run.app"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "AgroSense Backend Running Successfully",
		})
	})

	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=60")
		w.Write(openapiYAML)
	})

	r.Mount("/swagger", httpSwagger.Handler(
		httpSwagger.URL("/api/openapi.yaml"),
	))

	r.Route("/api", func(api chi.Router) {
		api.Route("/batch", func(br chi.Router) {
			br.Get("/", a.handleListBatches)
			br.Post("/", a.handleCreateBatch)
			br.Get("/{batchId}", a.handleGetBatch)
			br.Put("/{batchId}", a.handleUpdateBatch)
			br.Delete("/{batchId}", a.handleDeleteBatch)
			br.Put("/{batchId}/stage", a.handleTransitionStage)
			br.Post("/{batchId}/maintenance", a.handleLogMaintenance)
			br.Post("/{batchId}/harvest", a.handleRecordHarvest)
			br.Put("/{batchId}/environment", a.handleUpdateBatchEnvironment)
		})

		api.Get("/expiry", a.handleCheckExpiry)
		api.Get("/dashboard/summary", a.handleDashboardSummary)
		api.Get("/shelflife", a.handleShelfLife)

		api.Route("/environment", func(er chi.Router) {
			er.Get("/", a.handleGetEnvironment)
			er.Post("/", a.handleIngestEnvironment)
			er.Get("/history/24h", a.handleEnvironmentHistory24h)
			er.Get("/history/today", a.handleEnvironmentHistoryToday)
			er.Get("/history/7days", a.handleEnvironmentHistoryWeekly)
		})

		api.Route("/orders", func(or chi.Router) {
			or.Get("/", a.handleListOrders)
			or.Post("/", a.handleCreateOrder)
			or.Put("/status", a.handleUpdateOrderStatus)
			or.Get("/track/{phone}", a.handleTrackOrders)
		})

		a.catalog(a.products, "product").mount(api, "/products")
		a.catalog(a.dishes, "dish").mount(api, "/dishes")
	})

	return r
}
