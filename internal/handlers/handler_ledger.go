package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/greenlinkgolf/cashbook_app/internal/core/ports/services"
	"github.com/greenlinkgolf/cashbook_app/internal/dto"
	"github.com/greenlinkgolf/cashbook_app/internal/middleware"
)

// ledgerHandler handles read-only views over the payment ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService}
}

// getDailySummary godoc
// @Summary Get the daily takings summary
// @Description Returns the date's payment records with totals and, when the mapping allows, a preview of the journal that an export would produce
// @Tags cashbook
// @Produce json
// @Param date query string false "Payment date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.DailySummaryResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Router /cashbook/summary [get]
func (h *ledgerHandler) getDailySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	date, ok := parseDateQuery(c)
	if !ok {
		return
	}

	journal, records, err := h.ledgerService.DailySummary(c.Request.Context(), date)
	if err != nil {
		respondDomainError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSummaryResponse(date.Format("2006-01-02"), journal, records))
}

// listLedger godoc
// @Summary List payment records for a date
// @Description Returns every payment ledger entry created on the date, regardless of status
// @Tags cashbook
// @Produce json
// @Param date query string false "Payment date (YYYY-MM-DD), defaults to today"
// @Success 200 {array} domain.PaymentRecord
// @Failure 400 {object} map[string]string "Invalid date"
// @Router /cashbook/ledger [get]
func (h *ledgerHandler) listLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	date, ok := parseDateQuery(c)
	if !ok {
		return
	}

	records, err := h.ledgerService.ListByDate(c.Request.Context(), date)
	if err != nil {
		respondDomainError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// registerLedgerRoutes wires the ledger view endpoints into the cashbook group.
func registerLedgerRoutes(group *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)
	group.GET("/summary", h.getDailySummary)
	group.GET("/ledger", h.listLedger)
}
