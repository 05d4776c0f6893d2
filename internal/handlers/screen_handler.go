package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yquannn/sibbap-admin/internal/models"
	"github.com/Yquannn/sibbap-admin/internal/services"
)

// MountLoanMonitorRequest opens a loan monitor screen
type MountLoanMonitorRequest struct {
	MemberID string `json:"member_id"`
}

// UpdateFiltersRequest carries the loan filters or the deposit search,
// depending on the screen
type UpdateFiltersRequest struct {
	models.LoanFilters
	Query string `json:"q"`
}

// ModalRequest fires a deposit modal event
type ModalRequest struct {
	Event     string `json:"event" binding:"required"`
	AccountID string `json:"account_id"`
}

type ScreenHandler struct {
	screenService *services.ScreenService
}

func NewScreenHandler(screenService *services.ScreenService) *ScreenHandler {
	return &ScreenHandler{screenService: screenService}
}

// @Summary Mount Loan Monitor
// @Description Open a loan monitor screen for a member; data loads in the background
// @Tags Screens
// @Accept json
// @Produce json
// @Param screen body MountLoanMonitorRequest true "Member to monitor"
// @Success 201 {object} services.ScreenView
// @Failure 400 {object} map[string]string
// @Router /screens/loan-monitor [post]
func (h *ScreenHandler) MountLoanMonitor(c *gin.Context) {
	var req MountLoanMonitorRequest
	if err := BindNestedOrFlat(c, "screen", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	view, err := h.screenService.MountLoanMonitor(req.MemberID)
	if err != nil {
		respondError(c, err, services.LoanErrorMessage(err))
		return
	}

	c.JSON(http.StatusCreated, view)
}

// @Summary Mount Time Deposits
// @Description Open a time-deposit list screen; data loads in the background
// @Tags Screens
// @Produce json
// @Success 201 {object} services.ScreenView
// @Router /screens/time-deposits [post]
func (h *ScreenHandler) MountTimeDeposits(c *gin.Context) {
	view, err := h.screenService.MountTimeDeposits()
	if err != nil {
		respondError(c, err, err.Error())
		return
	}

	c.JSON(http.StatusCreated, view)
}

// @Summary Show Screen
// @Description Current state of a mounted screen
// @Tags Screens
// @Produce json
// @Param screen_id path string true "Screen ID"
// @Success 200 {object} services.ScreenView
// @Failure 404 {object} map[string]string
// @Router /screens/{screen_id} [get]
func (h *ScreenHandler) Show(c *gin.Context) {
	view, err := h.screenService.View(c.Param("screen_id"))
	if err != nil {
		respondError(c, err, err.Error())
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Update Screen Filters
// @Description Replace the loan filters or the deposit search; derived from the data already loaded
// @Tags Screens
// @Accept json
// @Produce json
// @Param screen_id path string true "Screen ID"
// @Param filters body UpdateFiltersRequest true "Filters"
// @Success 200 {object} services.ScreenView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /screens/{screen_id}/filters [patch]
func (h *ScreenHandler) UpdateFilters(c *gin.Context) {
	id := c.Param("screen_id")

	var req UpdateFiltersRequest
	if err := BindNestedOrFlat(c, "filters", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	current, err := h.screenService.View(id)
	if err != nil {
		respondError(c, err, err.Error())
		return
	}

	var view *services.ScreenView
	switch current.Kind {
	case services.ScreenLoanMonitor:
		view, err = h.screenService.SetLoanFilters(id, req.LoanFilters)
	default:
		view, err = h.screenService.SetDepositQuery(id, req.Query)
	}
	if err != nil {
		respondError(c, err, err.Error())
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Reload Screen
// @Description Fetch the screen's data again; responses of earlier fetches are discarded
// @Tags Screens
// @Produce json
// @Param screen_id path string true "Screen ID"
// @Success 202 {object} services.ScreenView
// @Failure 404 {object} map[string]string
// @Router /screens/{screen_id}/reload [post]
func (h *ScreenHandler) Reload(c *gin.Context) {
	view, err := h.screenService.Reload(c.Param("screen_id"))
	if err != nil {
		respondError(c, err, err.Error())
		return
	}

	c.JSON(http.StatusAccepted, view)
}

// @Summary Deposit Modal
// @Description Open or close the deposit modal of a time-deposit screen
// @Tags Screens
// @Accept json
// @Produce json
// @Param screen_id path string true "Screen ID"
// @Param modal body ModalRequest true "Modal event"
// @Success 200 {object} services.ScreenView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /screens/{screen_id}/modal [post]
func (h *ScreenHandler) Modal(c *gin.Context) {
	var req ModalRequest
	if err := BindNestedOrFlat(c, "modal", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.screenService.FireModal(c.Request.Context(), c.Param("screen_id"), req.Event, req.AccountID)
	if err != nil {
		respondError(c, err, err.Error())
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Unmount Screen
// @Description Close a screen; a fetch still in flight is discarded
// @Tags Screens
// @Param screen_id path string true "Screen ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /screens/{screen_id} [delete]
func (h *ScreenHandler) Delete(c *gin.Context) {
	if err := h.screenService.Unmount(c.Param("screen_id")); err != nil {
		respondError(c, err, err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}
