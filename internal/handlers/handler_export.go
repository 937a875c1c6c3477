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

// exportHandler handles the export pipeline endpoints.
type exportHandler struct {
	exportService portssvc.ExportSvcFacade
}

// newExportHandler creates a new exportHandler.
func newExportHandler(exportService portssvc.ExportSvcFacade) *exportHandler {
	return &exportHandler{exportService: exportService}
}

// runExport godoc
// @Summary Export one date's takings as an accounting journal file
// @Description Builds the balanced journal for the date, renders it in the configured layout, stages it for the importer and returns the file
// @Tags cashbook
// @Accept json
// @Produce text/csv
// @Param export body dto.ExportRequest true "Export parameters"
// @Success 200 {string} string "Rendered journal file; run metadata in X-Run-ID and X-Batch-Ref headers. Send Accept: application/json for dto.ExportResponse metadata only"
// @Failure 400 {object} map[string]string "Configuration incomplete or data integrity failure"
// @Failure 404 {object} map[string]string "No paid bookings on the date"
// @Failure 409 {object} map[string]string "Date already exported (send force to re-run)"
// @Failure 500 {object} map[string]string "Journal out of balance or staging failure"
// @Router /cashbook/export [post]
func (h *exportHandler) runExport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	operatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Operator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := dto.ExportRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for runExport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	result, err := h.exportService.Export(c.Request.Context(), date, req.Force, operatorID)
	if err != nil {
		respondDomainError(c, logger, err)
		return
	}

	c.Header("X-Run-ID", result.RunID)
	c.Header("X-Batch-Ref", result.BatchRef)

	// the dashboard only needs the run metadata; the file is already staged
	if c.GetHeader("Accept") == "application/json" {
		c.JSON(http.StatusOK, dto.ToExportResponse(result))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, "text/csv", result.File)
}

// getJobStatus godoc
// @Summary Poll the importer's verdict on an export run
// @Description Checks the staging area for the out-of-process importer's result file
// @Tags cashbook
// @Produce json
// @Param date query string false "Payment date (YYYY-MM-DD), defaults to today"
// @Param runId query string true "Run identifier from the export response"
// @Success 200 {object} dto.JobStatusResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Router /cashbook/export/status [get]
func (h *exportHandler) getJobStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	date, ok := parseDateQuery(c)
	if !ok {
		return
	}
	runID := c.Query("runId")
	if runID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "runId query parameter is required"})
		return
	}

	status, err := h.exportService.JobStatus(c.Request.Context(), date, runID)
	if err != nil {
		respondDomainError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.JobStatusResponse{
		Date:        date.Format("2006-01-02"),
		RunID:       runID,
		Status:      string(status.State),
		ResultPath:  status.ResultPath,
		CompletedAt: status.CompletedAt,
		Detail:      status.Detail,
	})
}

// exportWorkbook godoc
// @Summary Download one date's takings as a review spreadsheet
// @Description Builds the balanced journal for the date and renders it, with the underlying payment records, as a styled workbook. Read-only: nothing is staged and no ledger state changes
// @Tags cashbook
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param date query string false "Payment date (YYYY-MM-DD), defaults to today"
// @Success 200 {string} string "Workbook attachment"
// @Failure 400 {object} map[string]string "Configuration incomplete or invalid date"
// @Failure 404 {object} map[string]string "No paid bookings on the date"
// @Router /cashbook/export-excel [get]
func (h *exportHandler) exportWorkbook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	date, ok := parseDateQuery(c)
	if !ok {
		return
	}

	filename, workbook, err := h.exportService.ExportWorkbook(c.Request.Context(), date)
	if err != nil {
		respondDomainError(c, logger, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

// registerExportRoutes wires the export endpoints into the cashbook group.
func registerExportRoutes(group *gin.RouterGroup, exportService portssvc.ExportSvcFacade) {
	h := newExportHandler(exportService)
	group.POST("/export", middleware.RequireRole(middleware.RoleTreasury), h.runExport)
	group.GET("/export/status", h.getJobStatus)
	group.GET("/export-excel", h.exportWorkbook)
}
