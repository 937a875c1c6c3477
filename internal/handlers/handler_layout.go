package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/greenlinkgolf/cashbook_app/internal/core/ports/services"
	"github.com/greenlinkgolf/cashbook_app/internal/dto"
	"github.com/greenlinkgolf/cashbook_app/internal/middleware"
)

// maxSampleBytes caps uploaded sample files; a layout sample is a few
// rows, anything bigger is the wrong file.
const maxSampleBytes = 1 << 20

// layoutHandler handles HTTP requests related to the import layout.
type layoutHandler struct {
	layoutService portssvc.LayoutSvcFacade
}

// newLayoutHandler creates a new layoutHandler.
func newLayoutHandler(layoutService portssvc.LayoutSvcFacade) *layoutHandler {
	return &layoutHandler{layoutService: layoutService}
}

// inferLayout godoc
// @Summary Upload a sample export and infer the import layout
// @Description Analyzes a sample file previously exported from the accounting package and stores the inferred column layout
// @Tags cashbook
// @Accept multipart/form-data
// @Produce json
// @Param sample formData file true "Sample export file"
// @Success 200 {object} dto.LayoutResponse "Inferred layout for operator review"
// @Failure 400 {object} map[string]string "Sample could not be analyzed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /cashbook/layout [post]
func (h *layoutHandler) inferLayout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	uploaderID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Uploader user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("sample")
	if err != nil {
		logger.Warn("Sample file missing from upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A 'sample' file is required"})
		return
	}
	if fileHeader.Size > maxSampleBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sample file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded sample", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	sample, err := io.ReadAll(io.LimitReader(file, maxSampleBytes))
	if err != nil {
		logger.Error("Failed to read uploaded sample", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	layout, err := h.layoutService.InferLayout(c.Request.Context(), fileHeader.Filename, sample, uploaderID)
	if err != nil {
		respondDomainError(c, logger, err)
		return
	}

	logger.Info("Layout inferred from sample",
		slog.String("layout_id", layout.LayoutID),
		slog.String("source_filename", layout.SourceFilename),
	)
	c.JSON(http.StatusOK, dto.ToLayoutResponse(layout))
}

// getLayout godoc
// @Summary Get the stored import layout
// @Description Returns the layout descriptor inferred from the last uploaded sample
// @Tags cashbook
// @Produce json
// @Success 200 {object} dto.LayoutResponse
// @Failure 404 {object} map[string]string "No layout stored yet"
// @Router /cashbook/layout [get]
func (h *layoutHandler) getLayout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	layout, err := h.layoutService.GetLayout(c.Request.Context())
	if err != nil {
		respondDomainError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLayoutResponse(layout))
}

// registerLayoutRoutes wires the layout endpoints into the cashbook group.
func registerLayoutRoutes(group *gin.RouterGroup, layoutService portssvc.LayoutSvcFacade) {
	h := newLayoutHandler(layoutService)
	group.POST("/layout", h.inferLayout)
	group.GET("/layout", h.getLayout)
}
