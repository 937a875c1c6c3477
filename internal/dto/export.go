package dto

import (
	"time"

	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineResponse is one line of the day's journal as shown to the operator.
type JournalLineResponse struct {
	Account     string          `json:"account"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	TaxCode     string          `json:"taxCode,omitempty"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
}

// DailySummaryResponse mirrors the original daily-summary endpoint: totals
// plus the raw payment records feeding them.
type DailySummaryResponse struct {
	Date             string                     `json:"date"`
	TransactionCount int                        `json:"transactionCount"`
	GrossTotal       decimal.Decimal            `json:"grossTotal"`
	NetTotal         decimal.Decimal            `json:"netTotal"`
	VATTotal         decimal.Decimal            `json:"vatTotal"`
	ByMethod         map[string]decimal.Decimal `json:"byMethod"`
	ByClassification map[string]decimal.Decimal `json:"byClassification"`
	Lines            []JournalLineResponse      `json:"lines"`
	Records          []domain.PaymentRecord     `json:"records"`
}

// ExportResponse is the metadata view of a completed export run, returned
// when the client asks for JSON instead of the rendered file itself.
type ExportResponse struct {
	RunID       string          `json:"runID"`
	BatchRef    string          `json:"batchRef"`
	Filename    string          `json:"filename"`
	Date        string          `json:"date"`
	RecordCount int             `json:"recordCount"`
	GrossTotal  decimal.Decimal `json:"grossTotal"`
	VATTotal    decimal.Decimal `json:"vatTotal"`
	ExportedAt  time.Time       `json:"exportedAt"`
}

// ToExportResponse maps an export result into its metadata shape.
func ToExportResponse(r *domain.ExportResult) ExportResponse {
	return ExportResponse{
		RunID:       r.RunID,
		BatchRef:    r.BatchRef,
		Filename:    r.Filename,
		Date:        r.Journal.Date.Format("2006-01-02"),
		RecordCount: r.RecordCount,
		GrossTotal:  r.Journal.GrossTotal,
		VATTotal:    r.Journal.VATTotal,
		ExportedAt:  r.ExportedAt,
	}
}

// JobStatusResponse is the polled importer verdict for a run.
type JobStatusResponse struct {
	Date        string         `json:"date"`
	RunID       string         `json:"runID"`
	Status      string         `json:"status"` // pending|imported|failed
	ResultPath  string         `json:"resultPath,omitempty"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	Detail      map[string]any `json:"detail,omitempty"`
}

// ToSummaryResponse flattens a built journal and its records for display.
func ToSummaryResponse(date string, journal *domain.Journal, records []domain.PaymentRecord) DailySummaryResponse {
	resp := DailySummaryResponse{
		Date:             date,
		TransactionCount: len(records),
		ByMethod:         map[string]decimal.Decimal{},
		ByClassification: map[string]decimal.Decimal{},
		Records:          records,
	}
	if journal != nil {
		resp.GrossTotal = journal.GrossTotal
		resp.NetTotal = journal.NetTotal
		resp.VATTotal = journal.VATTotal
		for method, amount := range journal.ByMethod {
			resp.ByMethod[string(method)] = amount
		}
		for class, amount := range journal.ByClassification {
			resp.ByClassification[string(class)] = amount
		}
		resp.Lines = make([]JournalLineResponse, len(journal.Lines))
		for i, l := range journal.Lines {
			resp.Lines[i] = JournalLineResponse{
				Account:     l.Account,
				Debit:       l.Debit,
				Credit:      l.Credit,
				Reference:   l.Reference,
				Description: l.Description,
				TaxCode:     l.TaxCode,
				TaxAmount:   l.TaxAmount,
			}
		}
	}
	return resp
}
