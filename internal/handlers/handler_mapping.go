package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/greenlinkgolf/cashbook_app/internal/core/ports/services"
	"github.com/greenlinkgolf/cashbook_app/internal/dto"
	"github.com/greenlinkgolf/cashbook_app/internal/middleware"
)

// mappingHandler handles HTTP requests related to the account mapping.
type mappingHandler struct {
	mappingService portssvc.MappingSvcFacade
}

// newMappingHandler creates a new mappingHandler.
func newMappingHandler(mappingService portssvc.MappingSvcFacade) *mappingHandler {
	return &mappingHandler{mappingService: mappingService}
}

// getMapping godoc
// @Summary Get the account mapping configuration
// @Description Returns the stored association between payment data and ledger accounts
// @Tags cashbook
// @Produce json
// @Success 200 {object} dto.MappingResponse
// @Failure 404 {object} map[string]string "No mapping configured yet"
// @Router /cashbook/mapping [get]
func (h *mappingHandler) getMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	mapping, err := h.mappingService.GetMapping(c.Request.Context())
	if err != nil {
		respondDomainError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMappingResponse(mapping))
}

// updateMapping godoc
// @Summary Update the account mapping configuration
// @Description Merges the supplied fields into the stored mapping; omitted fields are left unchanged
// @Tags cashbook
// @Accept json
// @Produce json
// @Param mapping body dto.UpdateMappingRequest true "Mapping fields to update"
// @Success 200 {object} dto.MappingResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /cashbook/mapping [put]
func (h *mappingHandler) updateMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := dto.UpdateMappingRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateMapping", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	mapping, err := h.mappingService.UpdateMapping(c.Request.Context(), req, updaterUserID)
	if err != nil {
		respondDomainError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMappingResponse(mapping))
}

// registerMappingRoutes wires the mapping endpoints into the cashbook group.
func registerMappingRoutes(group *gin.RouterGroup, mappingService portssvc.MappingSvcFacade) {
	h := newMappingHandler(mappingService)
	group.GET("/mapping", h.getMapping)
	group.PUT("/mapping", middleware.RequireRole(middleware.RoleTreasury), h.updateMapping)
}
