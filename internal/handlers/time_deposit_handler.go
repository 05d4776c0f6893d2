package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yquannn/sibbap-admin/internal/services"
)

type TimeDepositHandler struct {
	depositService *services.TimeDepositService
	exportService  *services.ExportService
}

func NewTimeDepositHandler(depositService *services.TimeDepositService, exportService *services.ExportService) *TimeDepositHandler {
	return &TimeDepositHandler{depositService: depositService, exportService: exportService}
}

// @Summary List Time Deposits
// @Description Active time-deposit accounts, filtered by member name or code
// @Tags Time Deposits
// @Produce json
// @Param q query string false "Search on name and member code"
// @Success 200 {object} models.DepositListView
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /time-deposits [get]
func (h *TimeDepositHandler) Index(c *gin.Context) {
	view, err := h.depositService.View(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, services.DepositErrorMessage(err))
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Export Time Deposits
// @Description Download the filtered time-deposit list
// @Tags Time Deposits
// @Produce application/octet-stream
// @Param format query string true "xlsx or csv"
// @Param q query string false "Search on name and member code"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Router /time-deposits/export [get]
func (h *TimeDepositHandler) Export(c *gin.Context) {
	format := c.Query("format")
	if format != services.FormatCSV && format != services.FormatXLSX {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid format (xlsx, csv)"})
		return
	}

	view, err := h.depositService.View(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, services.DepositErrorMessage(err))
		return
	}

	data, filename, err := h.exportService.Deposits(c.Request.Context(), view, format)
	if err != nil {
		respondError(c, err, fmt.Sprintf("Failed to generate %s", format))
		return
	}

	sendFile(c, format, filename, data)
}
