package repositories

import (
	"context"
	"time"

	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
)

// DayCloseRepositoryFacade stores the append-only close/reopen/export
// event log. Current status is derived from the log, never updated in place.
type DayCloseRepositoryFacade interface {
	AppendEvent(ctx context.Context, event domain.DayCloseEvent) error
	// ListEventsByDate returns the date's events oldest first.
	ListEventsByDate(ctx context.Context, date time.Time) ([]domain.DayCloseEvent, error)
}
