package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yquannn/sibbap-admin/internal/services"
)

type HealthHandler struct {
	healthService *services.HealthService
	jobService    *services.JobService
}

func NewHealthHandler(healthService *services.HealthService, jobService *services.JobService) *HealthHandler {
	return &HealthHandler{healthService: healthService, jobService: jobService}
}

// @Summary Health Check
// @Description Reports the API status, the last upstream probe and the worker pool
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Index(c *gin.Context) {
	status := h.healthService.Status()
	c.JSON(http.StatusOK, gin.H{
		"status":   status.Status,
		"service":  status.Service,
		"version":  status.Version,
		"upstream": status.Upstream,
		"screens":  status.Screens,
		"jobs":     h.jobService.GetStatus(),
	})
}
