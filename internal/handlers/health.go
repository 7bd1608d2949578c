package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tiiiiiimmy/nextJS-login-ui/internal/models"
)

// NewHealthHandler returns the liveness probe handler.
// @Summary Health check
// @Description Always returns 200 while the process is up
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse "Service is up"
// @Router /health [get]
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.HealthResponse{Status: "ok"})
	}
}
