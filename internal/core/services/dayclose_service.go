package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/greenlinkgolf/cashbook_app/internal/apperrors"
	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
	portsrepo "github.com/greenlinkgolf/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/greenlinkgolf/cashbook_app/internal/core/ports/services"
	"github.com/greenlinkgolf/cashbook_app/internal/middleware"
)

// dayCloseService keeps the per-date close/reopen/export event log and
// derives current status from it.
type dayCloseService struct {
	dayCloseRepo portsrepo.DayCloseRepositoryFacade
	ledgerRepo   portsrepo.PaymentLedgerWriter
}

// NewDayCloseService creates a new DayCloseService.
func NewDayCloseService(dayCloseRepo portsrepo.DayCloseRepositoryFacade, ledgerRepo portsrepo.PaymentLedgerWriter) portssvc.DayCloseSvcFacade {
	return &dayCloseService{dayCloseRepo: dayCloseRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.DayCloseSvcFacade = (*dayCloseService)(nil)

// Close implements portssvc.DayCloseSvcFacade.
func (s *dayCloseService) Close(ctx context.Context, date time.Time, operatorID string, autoPush bool) (*domain.DayCloseView, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	date = truncateToDay(date)

	view, err := s.Status(ctx, date)
	if err != nil {
		return nil, err
	}
	if view.Status == domain.DayCloseClosed {
		return nil, &apperrors.ConflictError{Date: date.Format("2006-01-02"), BatchRef: view.ExportBatchRef}
	}

	event := domain.DayCloseEvent{
		EventID:    uuid.NewString(),
		CloseDate:  date,
		Action:     domain.ActionClosed,
		ActorID:    operatorID,
		OccurredAt: time.Now().UTC(),
		AutoPush:   autoPush,
	}
	if err := s.dayCloseRepo.AppendEvent(ctx, event); err != nil {
		return nil, err
	}

	logger.Info("Day closed",
		slog.String("date", date.Format("2006-01-02")),
		slog.String("operator", operatorID),
		slog.Bool("auto_push", autoPush),
	)
	return s.Status(ctx, date)
}

// Reopen implements portssvc.DayCloseSvcFacade.
func (s *dayCloseService) Reopen(ctx context.Context, date time.Time, operatorID string) (*domain.DayCloseView, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	date = truncateToDay(date)

	view, err := s.Status(ctx, date)
	if err != nil {
		return nil, err
	}
	if view.Status != domain.DayCloseClosed {
		return nil, fmt.Errorf("%w: day %s is not closed", apperrors.ErrValidation, date.Format("2006-01-02"))
	}

	// a later export must not read as a duplicate; the rendered files on
	// disk are left untouched
	cleared, err := s.ledgerRepo.ClearExported(ctx, date)
	if err != nil {
		return nil, err
	}

	event := domain.DayCloseEvent{
		EventID:    uuid.NewString(),
		CloseDate:  date,
		Action:     domain.ActionReopened,
		ActorID:    operatorID,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.dayCloseRepo.AppendEvent(ctx, event); err != nil {
		return nil, err
	}

	logger.Info("Day reopened",
		slog.String("date", date.Format("2006-01-02")),
		slog.String("operator", operatorID),
		slog.Int64("ledger_entries_cleared", cleared),
	)
	return s.Status(ctx, date)
}

// Status implements portssvc.DayCloseSvcFacade.
func (s *dayCloseService) Status(ctx context.Context, date time.Time) (*domain.DayCloseView, error) {
	date = truncateToDay(date)
	events, err := s.dayCloseRepo.ListEventsByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	view := domain.DeriveDayClose(date, events)
	return &view, nil
}

// RecordExport implements portssvc.DayCloseSvcFacade.
func (s *dayCloseService) RecordExport(ctx context.Context, date time.Time, operatorID, batchRef, filename string) error {
	return s.dayCloseRepo.AppendEvent(ctx, domain.DayCloseEvent{
		EventID:    uuid.NewString(),
		CloseDate:  truncateToDay(date),
		Action:     domain.ActionExported,
		ActorID:    operatorID,
		OccurredAt: time.Now().UTC(),
		BatchRef:   batchRef,
		Filename:   filename,
	})
}
