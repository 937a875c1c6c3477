package services

import (
	"context"

	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
	"github.com/greenlinkgolf/cashbook_app/internal/dto"
)

// MappingSvcFacade reads and writes the account mapping configuration.
// Save-time validation covers shape only; completeness against the payment
// methods in use is deferred to export time.
type MappingSvcFacade interface {
	GetMapping(ctx context.Context) (*domain.MappingConfiguration, error)
	UpdateMapping(ctx context.Context, req dto.UpdateMappingRequest, updaterUserID string) (*domain.MappingConfiguration, error)
}
