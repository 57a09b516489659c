package handlers

import (
	"net/http"

	"gomarketsync/internal/sync"
	"gomarketsync/pkg/logger"
)

type HealthHandler struct {
	health *sync.HealthService
	log    logger.Logger
}

func NewHealthHandler(health *sync.HealthService, log logger.Logger) *HealthHandler {
	return &HealthHandler{health: health, log: log}
}

type healthResponse struct {
	Healthy bool               `json:"healthy"`
	Checks  []sync.HealthCheck `json:"checks"`
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	checks, err := h.health.CheckAll(r.Context())
	if err != nil {
		h.log.Log("health check failed: %s", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	healthy := true
	for _, check := range checks {
		if !check.Passed {
			healthy = false
			break
		}
	}
	respondJSON(w, http.StatusOK, healthResponse{Healthy: healthy, Checks: checks})
}
