package services

import (
	"context"
	"time"

	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
)

// ExportSvcFacade coordinates the daily accounting close export: builds a
// balanced journal, renders it against the stored layout, stages the file
// for the out-of-process importer and marks the consumed ledger entries.
type ExportSvcFacade interface {
	// Export runs the pipeline for one payment date. Without force it
	// fails with apperrors.ConflictError when any of the date's ledger
	// entries is already exported.
	Export(ctx context.Context, date time.Time, force bool, operatorID string) (*domain.ExportResult, error)
	// JobStatus polls the staging area for the importer's verdict on a run.
	JobStatus(ctx context.Context, date time.Time, runID string) (domain.JobStatus, error)
	// ExportWorkbook renders the date's journal and payment records as a
	// styled spreadsheet for operator review. Nothing is staged and no
	// ledger state changes.
	ExportWorkbook(ctx context.Context, date time.Time) (string, []byte, error)
}

// LedgerSvcFacade exposes read-only views over the payment ledger for the
// operator dashboard (daily totals and raw records).
type LedgerSvcFacade interface {
	DailySummary(ctx context.Context, date time.Time) (*domain.Journal, []domain.PaymentRecord, error)
	ListByDate(ctx context.Context, date time.Time) ([]domain.PaymentRecord, error)
}
