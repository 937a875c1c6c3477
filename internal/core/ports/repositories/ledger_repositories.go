package repositories

import (
	"context"
	"time"

	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
)

// PaymentLedgerReader exposes read access to the payment ledger. The
// ledger is produced upstream by check-in; this service only reads it.
type PaymentLedgerReader interface {
	// FindByDate returns every payment record whose creation timestamp
	// falls on the given calendar date, regardless of status.
	FindByDate(ctx context.Context, date time.Time) ([]domain.PaymentRecord, error)
	// FindPaidByDate returns the records eligible for export: created on
	// the date and whose booking is in a paid state.
	FindPaidByDate(ctx context.Context, date time.Time) ([]domain.PaymentRecord, error)
	// FindExportedBatch returns the batch reference already attached to
	// the date's records, if any record on the date is flagged exported.
	FindExportedBatch(ctx context.Context, date time.Time) (string, bool, error)
}

// PaymentLedgerWriter mutates only the export idempotency markers.
type PaymentLedgerWriter interface {
	// MarkExported sets the exported flag and batch reference on the given
	// records inside one database transaction.
	MarkExported(ctx context.Context, paymentIDs []string, batchRef string, at time.Time) error
	// ClearExported resets the flag and batch reference for every record
	// on the date. Used by day reopen; returns the number of rows cleared.
	ClearExported(ctx context.Context, date time.Time) (int64, error)
}

// PaymentLedgerRepositoryFacade combines ledger read and marker write access.
type PaymentLedgerRepositoryFacade interface {
	PaymentLedgerReader
	PaymentLedgerWriter
}
