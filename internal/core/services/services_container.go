package services

import (
	portsrepo "github.com/greenlinkgolf/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/greenlinkgolf/cashbook_app/internal/core/ports/services"
	"github.com/greenlinkgolf/cashbook_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// day close first: the export coordinator records provenance through it
	container.DayClose = NewDayCloseService(repos.DayCloseRepo, repos.LedgerRepo)

	container.Layout = NewLayoutService(repos.LayoutRepo)
	container.Mapping = NewMappingService(repos.MappingRepo)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.MappingRepo, cfg.VATRate)
	container.Export = NewExportService(repos, container.DayClose, cfg.ClubCode, cfg.VATRate)

	return container
}
