package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yquannn/sibbap-admin/internal/models"
	"github.com/Yquannn/sibbap-admin/internal/services"
)

var exportContentTypes = map[string]string{
	services.FormatCSV:  "text/csv",
	services.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	services.FormatPDF:  "application/pdf",
}

type LoanMonitorHandler struct {
	loanService   *services.LoanMonitorService
	exportService *services.ExportService
}

func NewLoanMonitorHandler(loanService *services.LoanMonitorService, exportService *services.ExportService) *LoanMonitorHandler {
	return &LoanMonitorHandler{loanService: loanService, exportService: exportService}
}

// @Summary Loan Monitor
// @Description Loans, amortization schedule, repayments, totals and charts of one member
// @Tags Loan Monitor
// @Produce json
// @Param member_id path string true "Member ID"
// @Param loan_id query string false "Loan application id or all" default(all)
// @Param status query string false "Loan status or all" default(all)
// @Param search query string false "Search on voucher, loan type and application"
// @Param repayment_search query string false "Search on transaction number and method"
// @Success 200 {object} models.LoanMonitorView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /members/{member_id}/loan-monitor [get]
func (h *LoanMonitorHandler) Show(c *gin.Context) {
	var filters models.LoanFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.loanService.View(c.Request.Context(), c.Param("member_id"), filters)
	if err != nil {
		respondError(c, err, services.LoanErrorMessage(err))
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Export Loan Monitor
// @Description Download the member's loan statement with the current filters
// @Tags Loan Monitor
// @Produce application/octet-stream
// @Param member_id path string true "Member ID"
// @Param format query string true "pdf, xlsx or csv"
// @Param loan_id query string false "Loan application id or all"
// @Param status query string false "Loan status or all"
// @Param search query string false "Loan search"
// @Param repayment_search query string false "Repayment search"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Router /members/{member_id}/loan-monitor/export [get]
func (h *LoanMonitorHandler) Export(c *gin.Context) {
	format := c.Query("format")
	if _, ok := exportContentTypes[format]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid format (pdf, xlsx, csv)"})
		return
	}

	var filters models.LoanFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memberID := c.Param("member_id")
	view, err := h.loanService.View(c.Request.Context(), memberID, filters)
	if err != nil {
		respondError(c, err, services.LoanErrorMessage(err))
		return
	}

	data, filename, err := h.exportService.LoanMonitor(c.Request.Context(), memberID, view, format)
	if err != nil {
		respondError(c, err, fmt.Sprintf("Failed to generate %s", format))
		return
	}

	sendFile(c, format, filename, data)
}

func sendFile(c *gin.Context, format, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, exportContentTypes[format], data)
}
