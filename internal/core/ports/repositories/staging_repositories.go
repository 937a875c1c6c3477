package repositories

import (
	"context"

	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
)

// StagingBundle is the trio of files one export run drops into Ready/.
type StagingBundle struct {
	Filename string // PASTEL_JOURNAL_<CLUB>_<YYYYMMDD>_<runid>.csv
	File     []byte
	Audit    []byte // <base>.audit.json
	Job      []byte // <base>.job.json
}

// StagingStoreFacade is the filesystem hand-off to the out-of-process
// importer: a base directory with Ready, Imported, Failed and Archive
// subdirectories. Writes must be atomic at the single-file level
// (write-then-rename). A written file stays until the importer or an
// operator removes it; there is no recall.
type StagingStoreFacade interface {
	// WriteReady atomically places the bundle into Ready/. No ledger state
	// may be mutated if this returns an error.
	WriteReady(ctx context.Context, bundle StagingBundle) error
	// LookupResult polls Imported/ then Failed/ for <base>.result.json and
	// reports pending when neither exists yet.
	LookupResult(ctx context.Context, filename string) (domain.JobStatus, error)
}
