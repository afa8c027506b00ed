package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/ormawadev/orgapi/internal"
	"github.com/ormawadev/orgapi/internal/department"
	"github.com/ormawadev/orgapi/internal/metrics"
	"github.com/ormawadev/orgapi/internal/news"
	"github.com/ormawadev/orgapi/internal/ratelimit"
	"github.com/ormawadev/orgapi/internal/transport/middleware"
	"github.com/ormawadev/orgapi/internal/transport/swagger"
	"github.com/ormawadev/orgapi/internal/user"
	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// RegisterAllRoutes wires the public listing endpoints and their supporting
// surface. Every listing route passes the admission gate before any handler
// runs; health, metrics and docs stay outside the gate.
func RegisterAllRoutes(
	router *chi.Mux,
	cfg *internal.Config,
	db *sql.DB,
	rdb *redis.Client,
	limiter ratelimit.Limiter,
	recorder metrics.Recorder,
	registry *prometheus.Registry,
	departmentHandler *department.Handler,
	newsHandler *news.Handler,
	userHandler *user.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db, rdb)

	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.Metrics(recorder))

	// OpenAPI spec at root plus swagger UI
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	if cfg.Observability.Metrics.Enabled && registry != nil {
		router.Handle(cfg.Observability.Metrics.Path, metrics.Handler(registry))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// public listings behind the rate limiter
		r.Group(func(lr chi.Router) {
			lr.Use(middleware.RateLimit(limiter, recorder, logger))

			if departmentHandler != nil {
				lr.Get("/departments", departmentHandler.ListDepartments)
			}
			if newsHandler != nil {
				lr.Get("/news", newsHandler.ListNews)
			}
			if userHandler != nil {
				lr.Get("/users", userHandler.ListUsers)
			}
		})
	})
}
