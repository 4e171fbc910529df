package handler

import (
	"net/http"

	"github.com/avolkov/calcpad-server/internal/logger"
)

const apiVersion = "2.0.0"

// System handles service metadata and health endpoints.
type System struct {
	logger *logger.Logger
}

// NewSystem creates a new System handler.
func NewSystem(logger *logger.Logger) *System {
	return &System{logger: logger}
}

// APIInfo returns service metadata and the endpoint map.
func (h *System) APIInfo(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("System handler: processing api info request")

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to the calcpad API!",
		"version": apiVersion,
		"endpoints": map[string]string{
			"/calculate":      "Perform calculations",
			"/users":          "User management endpoints",
			"/users/register": "Register new user",
			"/users/login":    "User login",
			"/calculations":   "Calculation history endpoints",
			"/health":         "Health check",
			"/metrics":        "Prometheus metrics",
		},
	})
}

// Health reports service liveness.
func (h *System) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
