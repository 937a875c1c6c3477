package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenlinkgolf/cashbook_app/internal/apperrors"
	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
	portsrepo "github.com/greenlinkgolf/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/greenlinkgolf/cashbook_app/internal/core/ports/services"
	"github.com/greenlinkgolf/cashbook_app/internal/middleware"
)

// ledgerService provides read-only operator views over the payment ledger.
type ledgerService struct {
	ledgerRepo  portsrepo.PaymentLedgerReader
	mappingRepo portsrepo.MappingRepositoryFacade
	vatRate     decimal.Decimal
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.PaymentLedgerReader, mappingRepo portsrepo.MappingRepositoryFacade, vatRate decimal.Decimal) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo, mappingRepo: mappingRepo, vatRate: vatRate}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// DailySummary returns the date's paid records plus a preview journal when
// the mapping allows one to be built. A summary is a dashboard view, so an
// incomplete mapping degrades to records-only instead of failing; the
// export itself still fails closed.
func (s *ledgerService) DailySummary(ctx context.Context, date time.Time) (*domain.Journal, []domain.PaymentRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	date = truncateToDay(date)

	records, err := s.ledgerRepo.FindPaidByDate(ctx, date)
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, []domain.PaymentRecord{}, nil
	}

	mapping, err := s.mappingRepo.GetMapping(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, records, nil
		}
		return nil, nil, err
	}

	journal, err := BuildJournal(date, records, mapping, s.vatRate)
	if err != nil {
		var confErr *apperrors.ConfigurationError
		var integrityErr *apperrors.DataIntegrityError
		if errors.As(err, &confErr) || errors.As(err, &integrityErr) {
			logger.Warn("Daily summary degraded to records only",
				slog.String("date", date.Format("2006-01-02")),
				slog.String("reason", err.Error()))
			return nil, records, nil
		}
		return nil, nil, err
	}
	return journal, records, nil
}

// ListByDate returns every payment record created on the date.
func (s *ledgerService) ListByDate(ctx context.Context, date time.Time) ([]domain.PaymentRecord, error) {
	return s.ledgerRepo.FindByDate(ctx, truncateToDay(date))
}
