package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
	portsrepo "github.com/greenlinkgolf/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/greenlinkgolf/cashbook_app/internal/core/ports/services"
	"github.com/greenlinkgolf/cashbook_app/internal/dto"
	"github.com/greenlinkgolf/cashbook_app/internal/middleware"
	"github.com/greenlinkgolf/cashbook_app/internal/utils"
)

// mappingService reads and writes the account mapping configuration.
// Completeness against the payment methods actually in use can only be
// judged at export time, so saving validates shape, nothing more.
type mappingService struct {
	mappingRepo portsrepo.MappingRepositoryFacade
}

// NewMappingService creates a new MappingService.
func NewMappingService(mappingRepo portsrepo.MappingRepositoryFacade) portssvc.MappingSvcFacade {
	return &mappingService{mappingRepo: mappingRepo}
}

var _ portssvc.MappingSvcFacade = (*mappingService)(nil)

// GetMapping implements portssvc.MappingSvcFacade.
func (s *mappingService) GetMapping(ctx context.Context) (*domain.MappingConfiguration, error) {
	return s.mappingRepo.GetMapping(ctx)
}

// UpdateMapping implements portssvc.MappingSvcFacade. Unset request fields
// leave the stored values alone, so the operator can adjust one account
// without retyping the rest.
func (s *mappingService) UpdateMapping(ctx context.Context, req dto.UpdateMappingRequest, updaterUserID string) (*domain.MappingConfiguration, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	current, err := s.mappingRepo.GetMapping(ctx)
	if err != nil {
		current = &domain.MappingConfiguration{
			DebitAccounts:   map[domain.PaymentMethod]string{},
			RevenueAccounts: map[domain.FeeClassification]string{},
		}
	}
	if current.DebitAccounts == nil {
		current.DebitAccounts = map[domain.PaymentMethod]string{}
	}
	if current.RevenueAccounts == nil {
		current.RevenueAccounts = map[domain.FeeClassification]string{}
	}

	if req.VATAccount != nil {
		current.VATAccount = utils.SanitizeGLCode(*req.VATAccount)
	}
	for method, acct := range req.DebitAccounts {
		current.DebitAccounts[domain.PaymentMethod(method)] = utils.SanitizeGLCode(acct)
	}
	for class, acct := range req.RevenueAccounts {
		current.RevenueAccounts[domain.FeeClassification(class)] = utils.SanitizeGLCode(acct)
	}
	if req.DefaultRevenueAccount != nil {
		current.DefaultRevenueAccount = utils.SanitizeGLCode(*req.DefaultRevenueAccount)
	}
	if req.TaxCode != nil {
		current.TaxCode = *req.TaxCode
	}
	if req.SignOverride != nil {
		sign := domain.SignConvention(*req.SignOverride)
		current.SignOverride = &sign
	}

	now := time.Now().UTC()
	if current.CreatedAt.IsZero() {
		current.CreatedAt = now
		current.CreatedBy = updaterUserID
	}
	current.LastUpdatedAt = now
	current.LastUpdatedBy = updaterUserID

	if err := s.mappingRepo.SaveMapping(ctx, *current); err != nil {
		logger.Error("Failed to save mapping configuration", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Mapping configuration updated", slog.String("updated_by", updaterUserID))
	return current, nil
}
