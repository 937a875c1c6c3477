// Package staging implements the filesystem hand-off directory shared with
// the out-of-process importer that feeds the external accounting package.
package staging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
	portsrepo "github.com/greenlinkgolf/cashbook_app/internal/core/ports/repositories"
)

const (
	dirReady    = "Ready"
	dirImported = "Imported"
	dirFailed   = "Failed"
	dirArchive  = "Archive"
)

// FSStore is a StagingStoreFacade over a local or mounted directory tree.
// Ready/ is where this service writes; the importer moves files to
// Imported/ or Failed/ and drops a <base>.result.json verdict beside them.
// Archive/ is operator-managed and only ever created, never read.
type FSStore struct {
	baseDir string
}

// NewFSStore creates the staging directory tree if it does not exist yet
// and returns a store rooted at baseDir.
func NewFSStore(baseDir string) (*FSStore, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("staging base directory cannot be empty")
	}
	for _, sub := range []string{dirReady, dirImported, dirFailed, dirArchive} {
		if err := os.MkdirAll(filepath.Join(baseDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create staging directory %s: %w", sub, err)
		}
	}
	return &FSStore{baseDir: baseDir}, nil
}

// Ensure implementation matches interface
var _ portsrepo.StagingStoreFacade = (*FSStore)(nil)

// WriteReady places the bundle into Ready/. Each file is written to a
// temporary name and renamed into place so the importer never observes a
// partial file. The csv lands last: its siblings must already exist when
// the importer picks it up.
func (s *FSStore) WriteReady(ctx context.Context, bundle portsrepo.StagingBundle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	base := strings.TrimSuffix(bundle.Filename, filepath.Ext(bundle.Filename))
	readyDir := filepath.Join(s.baseDir, dirReady)

	files := []struct {
		name string
		data []byte
	}{
		{base + ".audit.json", bundle.Audit},
		{base + ".job.json", bundle.Job},
		{bundle.Filename, bundle.File},
	}
	written := make([]string, 0, len(files))
	for _, f := range files {
		target := filepath.Join(readyDir, f.name)
		if err := writeAtomic(target, f.data); err != nil {
			// roll back siblings so a retry starts from a clean slate
			for _, w := range written {
				os.Remove(w)
			}
			return fmt.Errorf("failed to stage %s: %w", f.name, err)
		}
		written = append(written, target)
	}
	return nil
}

// LookupResult checks Imported/ then Failed/ for the run's result file.
func (s *FSStore) LookupResult(ctx context.Context, filename string) (domain.JobStatus, error) {
	if err := ctx.Err(); err != nil {
		return domain.JobStatus{}, err
	}
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	resultName := base + ".result.json"

	for _, probe := range []struct {
		dir   string
		state domain.JobState
	}{
		{dirImported, domain.JobImported},
		{dirFailed, domain.JobFailed},
	} {
		path := filepath.Join(s.baseDir, probe.dir, resultName)
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return domain.JobStatus{}, fmt.Errorf("failed to stat %s: %w", path, err)
		}

		status := domain.JobStatus{State: probe.state, ResultPath: path}
		completedAt := info.ModTime().UTC()
		status.CompletedAt = &completedAt

		// the verdict body is advisory; an unparseable file still counts
		if payload, err := os.ReadFile(path); err == nil {
			var detail map[string]any
			if json.Unmarshal(payload, &detail) == nil {
				status.Detail = detail
			}
		}
		return status, nil
	}

	return domain.JobStatus{State: domain.JobPending}, nil
}

// writeAtomic writes data to a temp file in the target's directory and
// renames it into place.
func writeAtomic(target string, data []byte) error {
	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
