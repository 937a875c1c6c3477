package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenlinkgolf/cashbook_app/internal/apperrors"
	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
	portsrepo "github.com/greenlinkgolf/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/greenlinkgolf/cashbook_app/internal/core/ports/services"
	"github.com/greenlinkgolf/cashbook_app/internal/middleware"
	"github.com/greenlinkgolf/cashbook_app/internal/utils"
)

// exportService coordinates the daily close export pipeline.
type exportService struct {
	ledgerRepo  portsrepo.PaymentLedgerRepositoryFacade
	layoutRepo  portsrepo.LayoutRepositoryFacade
	mappingRepo portsrepo.MappingRepositoryFacade
	staging     portsrepo.StagingStoreFacade
	dayCloseSvc portssvc.DayCloseSvcFacade
	clubCode    string
	vatRate     decimal.Decimal
}

// NewExportService creates a new ExportService.
func NewExportService(repos portsrepo.RepositoryProvider, dayCloseSvc portssvc.DayCloseSvcFacade, clubCode string, vatRate decimal.Decimal) portssvc.ExportSvcFacade {
	return &exportService{
		ledgerRepo:  repos.LedgerRepo,
		layoutRepo:  repos.LayoutRepo,
		mappingRepo: repos.MappingRepo,
		staging:     repos.Staging,
		dayCloseSvc: dayCloseSvc,
		clubCode:    clubCode,
		vatRate:     vatRate,
	}
}

var _ portssvc.ExportSvcFacade = (*exportService)(nil)

// auditRecord is the .audit.json sibling written next to every rendered
// file: enough context to reconcile the batch without re-running anything.
type auditRecord struct {
	RunID             string                     `json:"runID"`
	BatchRef          string                     `json:"batchRef"`
	Date              string                     `json:"date"`
	Filename          string                     `json:"filename"`
	Operator          string                     `json:"operator"`
	RecordCount       int                        `json:"recordCount"`
	GrossTotal        decimal.Decimal            `json:"grossTotal"`
	NetTotal          decimal.Decimal            `json:"netTotal"`
	VATTotal          decimal.Decimal            `json:"vatTotal"`
	ByMethod          map[string]decimal.Decimal `json:"byMethod"`
	ByClassification  map[string]decimal.Decimal `json:"byClassification"`
	LayoutFingerprint string                     `json:"layoutFingerprint"`
	PaymentIDs        []string                   `json:"paymentIDs"`
	Forced            bool                       `json:"forced"`
	ExportedAt        time.Time                  `json:"exportedAt"`
}

// jobDescriptor is the .job.json sibling the out-of-process importer reads.
type jobDescriptor struct {
	RunID     string    `json:"runID"`
	Date      string    `json:"date"`
	Filename  string    `json:"filename"`
	ClubCode  string    `json:"clubCode"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"createdAt"`
}

// Export implements portssvc.ExportSvcFacade.
func (s *exportService) Export(ctx context.Context, date time.Time, force bool, operatorID string) (*domain.ExportResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	date = truncateToDay(date)
	dateStr := date.Format("2006-01-02")

	// idempotency: one export per payment date unless explicitly forced
	batchRef, exported, err := s.ledgerRepo.FindExportedBatch(ctx, date)
	if err != nil {
		return nil, err
	}
	if exported && !force {
		return nil, &apperrors.ConflictError{Date: dateStr, BatchRef: batchRef}
	}

	layout, err := s.layoutRepo.GetLayout(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.ConfigurationError{Missing: []string{"layout descriptor (upload a sample export first)"}}
		}
		return nil, err
	}
	mapping, err := s.mappingRepo.GetMapping(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.ConfigurationError{Missing: []string{"mapping configuration"}}
		}
		return nil, err
	}

	records, err := s.ledgerRepo.FindPaidByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no paid bookings on %s", apperrors.ErrNotFound, dateStr)
	}

	journal, err := BuildJournal(date, records, mapping, s.vatRate)
	if err != nil {
		return nil, err
	}

	file, err := RenderJournal(journal, layout, mapping, date)
	if err != nil {
		return nil, err
	}

	runID, err := utils.NewRunID()
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to generate run id", err)
	}
	filename := s.exportFilename(date, runID)
	newBatchRef := fmt.Sprintf("GL-%s-%s", date.Format("20060102"), runID)
	now := time.Now().UTC()

	audit := auditRecord{
		RunID:             runID,
		BatchRef:          newBatchRef,
		Date:              dateStr,
		Filename:          filename,
		Operator:          operatorID,
		RecordCount:       len(records),
		GrossTotal:        journal.GrossTotal,
		NetTotal:          journal.NetTotal,
		VATTotal:          journal.VATTotal,
		ByMethod:          stringKeysMethod(journal.ByMethod),
		ByClassification:  stringKeysClass(journal.ByClassification),
		LayoutFingerprint: layoutFingerprint(layout),
		PaymentIDs:        journal.PaymentIDs,
		Forced:            force,
		ExportedAt:        now,
	}
	auditJSON, err := json.MarshalIndent(audit, "", "  ")
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to marshal audit record", err)
	}
	jobJSON, err := json.MarshalIndent(jobDescriptor{
		RunID:     runID,
		Date:      dateStr,
		Filename:  filename,
		ClubCode:  s.clubCode,
		State:     "ready",
		CreatedAt: now,
	}, "", "  ")
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to marshal job descriptor", err)
	}

	// file first, ledger second: a staging failure must abort before any
	// ledger state is touched
	if err := s.staging.WriteReady(ctx, portsrepo.StagingBundle{
		Filename: filename,
		File:     file,
		Audit:    auditJSON,
		Job:      jobJSON,
	}); err != nil {
		return nil, apperrors.NewAppError(500, "failed to stage export files", err)
	}

	if err := s.ledgerRepo.MarkExported(ctx, journal.PaymentIDs, newBatchRef, now); err != nil {
		// the file is already on disk; the audit record makes the
		// resulting duplicate detectable on the next run
		logger.Error("Staged file written but ledger flag update failed",
			slog.String("filename", filename), slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(500, "failed to mark ledger entries exported", err)
	}

	if err := s.dayCloseSvc.RecordExport(ctx, date, operatorID, newBatchRef, filename); err != nil {
		logger.Warn("Failed to record export provenance on day close",
			slog.String("date", dateStr), slog.String("error", err.Error()))
	}

	logger.Info("Export completed",
		slog.String("date", dateStr),
		slog.String("run_id", runID),
		slog.String("batch_ref", newBatchRef),
		slog.Int("records", len(records)),
		slog.String("gross_total", journal.GrossTotal.StringFixed(2)),
	)

	return &domain.ExportResult{
		RunID:       runID,
		BatchRef:    newBatchRef,
		Filename:    filename,
		File:        file,
		Journal:     journal,
		RecordCount: len(records),
		ExportedAt:  now,
	}, nil
}

// JobStatus implements portssvc.ExportSvcFacade.
func (s *exportService) JobStatus(ctx context.Context, date time.Time, runID string) (domain.JobStatus, error) {
	return s.staging.LookupResult(ctx, s.exportFilename(truncateToDay(date), runID))
}

// ExportWorkbook implements portssvc.ExportSvcFacade. It reuses the journal
// build but renders a review spreadsheet instead of the importer flat file,
// so it needs a mapping configuration but no layout descriptor.
func (s *exportService) ExportWorkbook(ctx context.Context, date time.Time) (string, []byte, error) {
	date = truncateToDay(date)
	dateStr := date.Format("2006-01-02")

	mapping, err := s.mappingRepo.GetMapping(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, &apperrors.ConfigurationError{Missing: []string{"mapping configuration"}}
		}
		return "", nil, err
	}

	records, err := s.ledgerRepo.FindPaidByDate(ctx, date)
	if err != nil {
		return "", nil, err
	}
	if len(records) == 0 {
		return "", nil, fmt.Errorf("%w: no paid bookings on %s", apperrors.ErrNotFound, dateStr)
	}

	journal, err := BuildJournal(date, records, mapping, s.vatRate)
	if err != nil {
		return "", nil, err
	}

	workbook, err := RenderWorkbook(journal, records)
	if err != nil {
		return "", nil, err
	}

	filename := fmt.Sprintf("Cashbook_Payments_%s.xlsx", date.Format("20060102"))
	return filename, workbook, nil
}

func (s *exportService) exportFilename(date time.Time, runID string) string {
	return fmt.Sprintf("PASTEL_JOURNAL_%s_%s_%s.csv", s.clubCode, date.Format("20060102"), runID)
}

// layoutFingerprint hashes the descriptor so the audit trail shows which
// layout produced a file even after a re-upload replaces it.
func layoutFingerprint(layout *domain.LayoutDescriptor) string {
	payload, err := json.Marshal(layout)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])[:12]
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func stringKeysMethod(in map[domain.PaymentMethod]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}

func stringKeysClass(in map[domain.FeeClassification]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}
