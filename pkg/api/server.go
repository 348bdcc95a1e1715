// Package api exposes the store operations and the batch import flow over a
// localhost HTTP surface for UI clients, with Prometheus metrics.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/entityentitled101/loreforge/pkg/extract"
)

// Router builds the chi router for the given server.
func Router(server *Server) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	m := server.metrics
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", m.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		r.Get("/characters", m.InstrumentHandler("GET", "/api/v1/characters", server.handleListCharacters))
		r.Post("/characters", m.InstrumentHandler("POST", "/api/v1/characters", server.handleCreateCharacter))
		r.Get("/characters/{id}", m.InstrumentHandler("GET", "/api/v1/characters/{id}", server.handleGetCharacter))
		r.Patch("/characters/{id}", m.InstrumentHandler("PATCH", "/api/v1/characters/{id}", server.handleUpdateCharacter))
		r.Delete("/characters/{id}", m.InstrumentHandler("DELETE", "/api/v1/characters/{id}", server.handleDeleteCharacter))

		r.Get("/locations", m.InstrumentHandler("GET", "/api/v1/locations", server.handleListLocations))
		r.Post("/locations", m.InstrumentHandler("POST", "/api/v1/locations", server.handleCreateLocation))
		r.Get("/locations/{id}", m.InstrumentHandler("GET", "/api/v1/locations/{id}", server.handleGetLocation))
		r.Patch("/locations/{id}", m.InstrumentHandler("PATCH", "/api/v1/locations/{id}", server.handleUpdateLocation))
		r.Delete("/locations/{id}", m.InstrumentHandler("DELETE", "/api/v1/locations/{id}", server.handleDeleteLocation))

		r.Post("/import", m.InstrumentHandler("POST", "/api/v1/import", server.handleImport))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured. It blocks
// until the listener fails.
func StartServer(st LoreStore, extractor extract.Extractor, config ServerConfig, log *zap.Logger) error {
	metrics := NewMetrics(prometheus.DefaultRegisterer)
	server := NewServer(st, extractor, metrics, log)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	log.Info("API server listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, Router(server))
}
