package repositories

import (
	"context"

	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
)

// LayoutRepositoryFacade persists the club's single layout descriptor.
// Saving replaces the previous descriptor; there is one per club.
type LayoutRepositoryFacade interface {
	SaveLayout(ctx context.Context, layout domain.LayoutDescriptor) error
	GetLayout(ctx context.Context) (*domain.LayoutDescriptor, error)
}

// MappingRepositoryFacade persists the single mapping configuration row.
type MappingRepositoryFacade interface {
	SaveMapping(ctx context.Context, mapping domain.MappingConfiguration) error
	GetMapping(ctx context.Context) (*domain.MappingConfiguration, error)
}
