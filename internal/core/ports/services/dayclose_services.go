package services

import (
	"context"
	"time"

	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
)

// DayCloseSvcFacade gates whether a date's bookings may still be edited and
// records export provenance. Closing does not itself export; export is a
// separate, explicitly invoked step.
type DayCloseSvcFacade interface {
	// Close fails with apperrors.ConflictError when the date is already closed.
	Close(ctx context.Context, date time.Time, operatorID string, autoPush bool) (*domain.DayCloseView, error)
	// Reopen fails with apperrors.ErrValidation when the date is not closed.
	// It clears the date's exported flags and batch references so a later
	// export is not treated as a duplicate; rendered files stay on disk.
	Reopen(ctx context.Context, date time.Time, operatorID string) (*domain.DayCloseView, error)
	Status(ctx context.Context, date time.Time) (*domain.DayCloseView, error)
	// RecordExport appends an exported event to the date's history.
	RecordExport(ctx context.Context, date time.Time, operatorID, batchRef, filename string) error
}
