package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheckResponse represents the health check response structure
type HealthCheckResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
}

// HealthCheck reports whether session storage is reachable.
func (h *Handler) HealthCheck(c *gin.Context) {
	storageStatus := "connected"
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		storageStatus = "disconnected"
	}

	status := http.StatusOK
	response := HealthCheckResponse{
		Status:  "ok",
		Storage: storageStatus,
	}

	if storageStatus != "connected" {
		status = http.StatusServiceUnavailable
		response.Status = "unavailable"
	}

	c.JSON(status, response)
}
