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

const mappingRowID = 1

type PgxMappingRepository struct {
	BaseRepository
}

// newPgxMappingRepository creates a new repository for the account mapping
// configuration. Single row, stored as JSONB like the layout descriptor.
func newPgxMappingRepository(pool *pgxpool.Pool) portsrepo.MappingRepositoryFacade {
	return &PgxMappingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.MappingRepositoryFacade = (*PgxMappingRepository)(nil)

// SaveMapping replaces the stored mapping configuration.
func (r *PgxMappingRepository) SaveMapping(ctx context.Context, mapping domain.MappingConfiguration) error {
	payload, err := json.Marshal(mapping)
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal mapping configuration", err)
	}

	query := `
		INSERT INTO mapping_config (id, config, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			config = EXCLUDED.config,
			updated_at = EXCLUDED.updated_at;
	`
	_, err = r.Pool.Exec(ctx, query, mappingRowID, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save mapping configuration: %w", err)
	}
	return nil
}

// GetMapping returns the stored configuration or apperrors.ErrNotFound.
func (r *PgxMappingRepository) GetMapping(ctx context.Context) (*domain.MappingConfiguration, error) {
	query := `SELECT config FROM mapping_config WHERE id = $1;`

	var payload []byte
	err := r.Pool.QueryRow(ctx, query, mappingRowID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load mapping configuration: %w", err)
	}

	var mapping domain.MappingConfiguration
	if err := json.Unmarshal(payload, &mapping); err != nil {
		return nil, apperrors.NewAppError(500, "failed to unmarshal mapping configuration", err)
	}
	return &mapping, nil
}
