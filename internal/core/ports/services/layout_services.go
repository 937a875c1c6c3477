package services

import (
	"context"

	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
)

// LayoutSvcFacade infers and stores the external package's import layout.
type LayoutSvcFacade interface {
	// InferLayout analyzes raw sample bytes previously exported by the
	// external accounting package and persists the resulting descriptor.
	// Returns apperrors.ErrValidation-wrapped failures with diagnostics
	// naming the roles that could not be located.
	InferLayout(ctx context.Context, filename string, sample []byte, uploaderID string) (*domain.LayoutDescriptor, error)
	// GetLayout returns the stored descriptor or apperrors.ErrNotFound.
	GetLayout(ctx context.Context) (*domain.LayoutDescriptor, error)
}
