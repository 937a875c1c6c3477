package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greenlinkgolf/cashbook_app/internal/apperrors"
	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
	portsrepo "github.com/greenlinkgolf/cashbook_app/internal/core/ports/repositories"
	"github.com/greenlinkgolf/cashbook_app/internal/models"
	"github.com/greenlinkgolf/cashbook_app/internal/utils/mapping"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for payment ledger data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.PaymentLedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PaymentLedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const paymentColumns = `payment_id, booking_ref, player_name, amount, method, classification, status, exported, batch_ref, exported_at, created_at`

// dayBounds returns the half-open UTC interval covering the calendar date.
func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

func (r *PgxLedgerRepository) queryPayments(ctx context.Context, query string, args ...any) ([]domain.PaymentRecord, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.PaymentRecord, 0)
	for rows.Next() {
		var m models.PaymentRecord
		if err := rows.Scan(
			&m.PaymentID,
			&m.BookingRef,
			&m.PlayerName,
			&m.Amount,
			&m.Method,
			&m.Classification,
			&m.Status,
			&m.Exported,
			&m.BatchRef,
			&m.ExportedAt,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment record: %w", err)
		}
		records = append(records, mapping.ToDomainPayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment records: %w", err)
	}
	return records, nil
}

// FindByDate returns every payment record created on the given calendar date.
func (r *PgxLedgerRepository) FindByDate(ctx context.Context, date time.Time) ([]domain.PaymentRecord, error) {
	start, end := dayBounds(date)
	query := `
		SELECT ` + paymentColumns + `
		FROM payment_records
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at, payment_id;
	`
	return r.queryPayments(ctx, query, start, end)
}

// FindPaidByDate returns the date's export-eligible records.
func (r *PgxLedgerRepository) FindPaidByDate(ctx context.Context, date time.Time) ([]domain.PaymentRecord, error) {
	start, end := dayBounds(date)
	query := `
		SELECT ` + paymentColumns + `
		FROM payment_records
		WHERE created_at >= $1 AND created_at < $2 AND status = $3
		ORDER BY created_at, payment_id;
	`
	return r.queryPayments(ctx, query, start, end, string(domain.PaymentPaid))
}

// FindExportedBatch reports the batch reference already attached to the
// date's records, if any of them carries the exported flag.
func (r *PgxLedgerRepository) FindExportedBatch(ctx context.Context, date time.Time) (string, bool, error) {
	start, end := dayBounds(date)
	query := `
		SELECT batch_ref
		FROM payment_records
		WHERE created_at >= $1 AND created_at < $2 AND exported = TRUE
		ORDER BY created_at DESC
		LIMIT 1;
	`
	var batchRef *string
	err := r.Pool.QueryRow(ctx, query, start, end).Scan(&batchRef)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to check exported batch for %s: %w", date.Format("2006-01-02"), err)
	}
	if batchRef == nil {
		return "", true, nil
	}
	return *batchRef, true, nil
}

// MarkExported flags the given records as exported under one batch
// reference, inside a single database transaction.
func (r *PgxLedgerRepository) MarkExported(ctx context.Context, paymentIDs []string, batchRef string, at time.Time) error {
	if len(paymentIDs) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	query := `
		UPDATE payment_records
		SET exported = TRUE, batch_ref = $1, exported_at = $2
		WHERE payment_id = ANY($3);
	`
	tag, err := tx.Exec(ctx, query, batchRef, at, paymentIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark payment records exported", err)
	}
	if tag.RowsAffected() != int64(len(paymentIDs)) {
		// a record vanished between read and write; abort rather than flag a partial batch
		return apperrors.NewAppError(500,
			fmt.Sprintf("expected to flag %d records, flagged %d", len(paymentIDs), tag.RowsAffected()), nil)
	}

	return r.Commit(ctx, tx)
}

// ClearExported resets the exported flag and batch reference for every
// record on the date. Returns the number of rows cleared.
func (r *PgxLedgerRepository) ClearExported(ctx context.Context, date time.Time) (int64, error) {
	start, end := dayBounds(date)
	query := `
		UPDATE payment_records
		SET exported = FALSE, batch_ref = NULL, exported_at = NULL
		WHERE created_at >= $1 AND created_at < $2 AND exported = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to clear exported flags for %s: %w", date.Format("2006-01-02"), err)
	}
	return tag.RowsAffected(), nil
}
