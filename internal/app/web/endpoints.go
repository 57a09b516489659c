package web

import (
	"net/http"

	"gomarketsync/internal/app/web/handlers"
	"gomarketsync/internal/auth"
	"gomarketsync/metrics"
	"gomarketsync/pkg/middleware"
)

// Handlers -- набор обработчиков административного API.
type Handlers struct {
	Sync        *handlers.SyncHandler
	Pull        *handlers.PullHandler
	Identifiers *handlers.IdentifiersHandler
	Health      *handlers.HealthHandler
}

// SetupRoutes собирает маршруты административного API.
// /metrics и /api/health открыты, остальные эндпоинты за JWT.
func SetupRoutes(h Handlers, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	protect := auth.AuthMiddleware(jwtSecret)

	mux.Handle("/api/sync", protect(http.HandlerFunc(h.Sync.Handle)))
	mux.Handle("/api/link", protect(http.HandlerFunc(h.Sync.HandleLink)))
	mux.Handle("/api/pull", protect(http.HandlerFunc(h.Pull.Handle)))
	mux.Handle("/api/identifiers", protect(http.HandlerFunc(h.Identifiers.Handle)))
	mux.HandleFunc("/api/health", h.Health.Handle)
	mux.Handle("/metrics", metrics.MetricsHandler())

	return middleware.PrometheusMiddleware(mux)
}
