package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greenlinkgolf/cashbook_app/internal/apperrors"
	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
	portsrepo "github.com/greenlinkgolf/cashbook_app/internal/core/ports/repositories"
)

// layoutRowID pins the single-descriptor-per-club invariant at the
// database level: every save lands on the same row.
const layoutRowID = 1

type PgxLayoutRepository struct {
	BaseRepository
}

// newPgxLayoutRepository creates a new repository for layout descriptors.
// The descriptor is a nested document tied to no other table, so it is
// stored as a JSONB blob rather than flattened into columns.
func newPgxLayoutRepository(pool *pgxpool.Pool) portsrepo.LayoutRepositoryFacade {
	return &PgxLayoutRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.LayoutRepositoryFacade = (*PgxLayoutRepository)(nil)

// SaveLayout replaces the club's stored descriptor.
func (r *PgxLayoutRepository) SaveLayout(ctx context.Context, layout domain.LayoutDescriptor) error {
	payload, err := json.Marshal(layout)
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal layout descriptor", err)
	}

	query := `
		INSERT INTO layout_descriptors (id, descriptor, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			descriptor = EXCLUDED.descriptor,
			updated_at = EXCLUDED.updated_at;
	`
	_, err = r.Pool.Exec(ctx, query, layoutRowID, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save layout descriptor: %w", err)
	}
	return nil
}

// GetLayout returns the stored descriptor or apperrors.ErrNotFound.
func (r *PgxLayoutRepository) GetLayout(ctx context.Context) (*domain.LayoutDescriptor, error) {
	query := `SELECT descriptor FROM layout_descriptors WHERE id = $1;`

	var payload []byte
	err := r.Pool.QueryRow(ctx, query, layoutRowID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load layout descriptor: %w", err)
	}

	var layout domain.LayoutDescriptor
	if err := json.Unmarshal(payload, &layout); err != nil {
		return nil, apperrors.NewAppError(500, "failed to unmarshal layout descriptor", err)
	}
	return &layout, nil
}
