package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yquannn/sibbap-admin/internal/services"
)

type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobSvc *services.JobService) *JobHandler {
	return &JobHandler{jobService: jobSvc}
}

// @Summary Get background job status
// @Description Worker pool load: screen fetches, idle sweeps and upstream probes
// @Tags Jobs
// @Produce json
// @Success 200 {object} services.JobStatus
// @Router /jobs/status [get]
func (h *JobHandler) Status(c *gin.Context) {
	status := h.jobService.GetStatus()
	if status.Saturated {
		c.Header("Retry-After", "1")
	}
	c.JSON(http.StatusOK, status)
}
