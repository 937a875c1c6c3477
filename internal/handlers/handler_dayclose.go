package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/greenlinkgolf/cashbook_app/internal/core/ports/services"
	"github.com/greenlinkgolf/cashbook_app/internal/dto"
	"github.com/greenlinkgolf/cashbook_app/internal/middleware"
)

// dayCloseHandler handles the close/reopen lifecycle endpoints.
type dayCloseHandler struct {
	dayCloseService portssvc.DayCloseSvcFacade
}

// newDayCloseHandler creates a new dayCloseHandler.
func newDayCloseHandler(dayCloseService portssvc.DayCloseSvcFacade) *dayCloseHandler {
	return &dayCloseHandler{dayCloseService: dayCloseService}
}

// closeDay godoc
// @Summary Close a date's accounting
// @Description Marks the date's takings as reconciled; bookings for the date can no longer be edited upstream
// @Tags cashbook
// @Accept json
// @Produce json
// @Param close body dto.CloseDayRequest true "Close parameters"
// @Success 200 {object} dto.DayCloseResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Failure 409 {object} map[string]string "Date already closed"
// @Router /cashbook/close-day [post]
func (h *dayCloseHandler) closeDay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	operatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Operator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := dto.CloseDayRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for closeDay", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	view, err := h.dayCloseService.Close(c.Request.Context(), date, operatorID, req.AutoPush)
	if err != nil {
		respondDomainError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDayCloseResponse(view))
}

// reopenDay godoc
// @Summary Reopen a closed date
// @Description Reverts a close so late corrections can be captured; clears the date's exported flags so the next export is not treated as a duplicate
// @Tags cashbook
// @Accept json
// @Produce json
// @Param reopen body dto.ReopenDayRequest true "Reopen parameters"
// @Success 200 {object} dto.DayCloseResponse
// @Failure 400 {object} map[string]string "Date is not closed"
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Router /cashbook/reopen-day [post]
func (h *dayCloseHandler) reopenDay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	operatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Operator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := dto.ReopenDayRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reopenDay", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	view, err := h.dayCloseService.Reopen(c.Request.Context(), date, operatorID)
	if err != nil {
		respondDomainError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDayCloseResponse(view))
}

// getCloseStatus godoc
// @Summary Get a date's close status and history
// @Description Returns the derived close state plus the full close/reopen/export event history for the date
// @Tags cashbook
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.DayCloseResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Router /cashbook/close-status [get]
func (h *dayCloseHandler) getCloseStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	date, ok := parseDateQuery(c)
	if !ok {
		return
	}

	view, err := h.dayCloseService.Status(c.Request.Context(), date)
	if err != nil {
		respondDomainError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDayCloseResponse(view))
}

// RegisterDayCloseRoutes wires the close lifecycle endpoints into the cashbook group.
func RegisterDayCloseRoutes(group *gin.RouterGroup, dayCloseService portssvc.DayCloseSvcFacade) {
	h := newDayCloseHandler(dayCloseService)
	group.POST("/close-day", middleware.RequireRole(middleware.RoleTreasury), h.closeDay)
	group.POST("/reopen-day", middleware.RequireRole(middleware.RoleTreasury), h.reopenDay)
	group.GET("/close-status", h.getCloseStatus)
}
