package pgsql

import (
	portsrepo "github.com/greenlinkgolf/cashbook_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the database-backed repositories together
// with the filesystem staging store, which is constructed by the caller.
func NewRepositoryProvider(dbPool *pgxpool.Pool, staging portsrepo.StagingStoreFacade) portsrepo.RepositoryProvider {
	ledgerRepo := newPgxLedgerRepository(dbPool)
	layoutRepo := newPgxLayoutRepository(dbPool)
	mappingRepo := newPgxMappingRepository(dbPool)
	dayCloseRepo := newPgxDayCloseRepository(dbPool)

	return portsrepo.RepositoryProvider{
		LedgerRepo:   ledgerRepo,
		LayoutRepo:   layoutRepo,
		MappingRepo:  mappingRepo,
		DayCloseRepo: dayCloseRepo,
		Staging:      staging,
	}
}
