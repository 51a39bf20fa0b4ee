// controllers/health_controller.go
package controllers

import (
	"lifetag/database"
	"lifetag/models"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const apiVersion = "1.0.0"

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

// HealthCheck reports service health
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func (hc *HealthController) HealthCheck(c *gin.Context) {
	services := map[string]string{
		"api": "healthy",
	}

	status := "healthy"
	if database.IsConnected() {
		services["mongodb"] = "healthy"
	} else {
		services["mongodb"] = "unhealthy"
		status = "degraded"
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Services:  services,
		Version:   apiVersion,
	})
}

// APIInfo returns basic API metadata
// @Summary API info
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router / [get]
func (hc *HealthController) APIInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "LifeTag API",
		"version": apiVersion,
		"docs":    "/api/v1",
	})
}
