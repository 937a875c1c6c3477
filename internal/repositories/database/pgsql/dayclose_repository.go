package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
	portsrepo "github.com/greenlinkgolf/cashbook_app/internal/core/ports/repositories"
	"github.com/greenlinkgolf/cashbook_app/internal/models"
	"github.com/greenlinkgolf/cashbook_app/internal/utils/mapping"
)

type PgxDayCloseRepository struct {
	BaseRepository
}

// newPgxDayCloseRepository creates a new repository for the day-close
// event log. The table is append-only; status is derived by the caller.
func newPgxDayCloseRepository(pool *pgxpool.Pool) portsrepo.DayCloseRepositoryFacade {
	return &PgxDayCloseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.DayCloseRepositoryFacade = (*PgxDayCloseRepository)(nil)

// AppendEvent inserts one event. There is no update path.
func (r *PgxDayCloseRepository) AppendEvent(ctx context.Context, event domain.DayCloseEvent) error {
	m := mapping.ToModelDayCloseEvent(event)

	query := `
		INSERT INTO day_close_events (event_id, close_date, action, actor_id, occurred_at, batch_ref, filename, auto_push)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EventID,
		m.CloseDate,
		m.Action,
		m.ActorID,
		m.OccurredAt,
		m.BatchRef,
		m.Filename,
		m.AutoPush,
	)
	if err != nil {
		return fmt.Errorf("failed to append day close event %s: %w", m.EventID, err)
	}
	return nil
}

// ListEventsByDate returns the date's events oldest first.
func (r *PgxDayCloseRepository) ListEventsByDate(ctx context.Context, date time.Time) ([]domain.DayCloseEvent, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	query := `
		SELECT event_id, close_date, action, actor_id, occurred_at, batch_ref, filename, auto_push
		FROM day_close_events
		WHERE close_date = $1
		ORDER BY occurred_at, event_id;
	`
	rows, err := r.Pool.Query(ctx, query, start)
	if err != nil {
		return nil, fmt.Errorf("failed to query day close events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.DayCloseEvent, 0)
	for rows.Next() {
		var m models.DayCloseEvent
		if err := rows.Scan(
			&m.EventID,
			&m.CloseDate,
			&m.Action,
			&m.ActorID,
			&m.OccurredAt,
			&m.BatchRef,
			&m.Filename,
			&m.AutoPush,
		); err != nil {
			return nil, fmt.Errorf("failed to scan day close event: %w", err)
		}
		events = append(events, mapping.ToDomainDayCloseEvent(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating day close events: %w", err)
	}
	return events, nil
}
