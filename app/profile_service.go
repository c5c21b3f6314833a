package app

import (
	"context"
	"sync"
	"time"

	"demandlens/domain/core"
	"demandlens/domain/dataset"
	"demandlens/domain/profile"
	"demandlens/internal"
	"demandlens/internal/errors"
	"demandlens/internal/profiling"
	"demandlens/ports"

	"golang.org/x/sync/semaphore"
)

// maxConcurrentProfiles bounds how many tables are profiled at once.
// Profiling is O(rows x columns) and CPU-bound; the dashboard can accept
// uploads faster than it should chew through them.
const maxConcurrentProfiles = 4

// ProfileService orchestrates dataset ingestion and profiling. The
// profiler itself is pure and deterministic, so results are memoized on
// the table's content fingerprint: re-uploading the same file never
// recomputes.
type ProfileService struct {
	profiler *profiling.Profiler
	repo     ports.DatasetRepository
	sem      *semaphore.Weighted

	mu    sync.RWMutex
	cache map[core.Fingerprint]*profile.Profile
}

// NewProfileService creates a profile service with the given readiness
// policy and dataset repository
func NewProfileService(policy profiling.ReadinessPolicy, repo ports.DatasetRepository) *ProfileService {
	return &ProfileService{
		profiler: profiling.NewProfiler(policy),
		repo:     repo,
		sem:      semaphore.NewWeighted(maxConcurrentProfiles),
		cache:    make(map[core.Fingerprint]*profile.Profile),
	}
}

// ProfileTable computes (or recalls) the profile for a table without
// creating a dataset record. This is the memoized pure path.
func (s *ProfileService) ProfileTable(ctx context.Context, table dataset.Table) (*profile.Profile, error) {
	fp := table.Fingerprint()

	s.mu.RLock()
	cached, ok := s.cache[fp]
	s.mu.RUnlock()
	if ok {
		internal.DefaultLogger.Debug("Profile cache hit for fingerprint %.12s", fp.String())
		return cached, nil
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrap(err, "profiling capacity unavailable")
	}
	defer s.sem.Release(1)

	p := s.profiler.Profile(table)

	s.mu.Lock()
	s.cache[fp] = p
	s.mu.Unlock()
	return p, nil
}

// IngestUpload registers an uploaded table as a dataset, profiles it, and
// persists both. The returned dataset is in ready state with its counts
// filled from the profile.
func (s *ProfileService) IngestUpload(ctx context.Context, filename, mimeType string, table dataset.Table) (*dataset.Dataset, *profile.Profile, error) {
	ds := dataset.NewDataset(filename)
	ds.MimeType = mimeType
	ds.Fingerprint = table.Fingerprint()
	if err := s.repo.Create(ctx, ds); err != nil {
		return nil, nil, errors.Wrap(err, "failed to register dataset")
	}

	p, err := s.ProfileTable(ctx, table)
	if err != nil {
		ds.Status = dataset.StatusFailed
		ds.ErrorMessage = err.Error()
		ds.UpdatedAt = time.Now()
		if updateErr := s.repo.Update(ctx, ds); updateErr != nil {
			internal.DefaultLogger.Error("Failed to mark dataset %s failed: %v", ds.ID, updateErr)
		}
		return nil, nil, err
	}

	ds.RecordCount = p.Dimensions.Rows
	ds.FieldCount = p.Dimensions.Columns
	ds.MissingRate = 100.0 - p.DataQuality.Completeness
	ds.Status = dataset.StatusReady
	ds.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, ds); err != nil {
		return nil, nil, errors.Wrap(err, "failed to update dataset")
	}
	if err := s.repo.SaveProfile(ctx, ds.ID, p); err != nil {
		return nil, nil, errors.Wrap(err, "failed to persist profile")
	}
	return ds, p, nil
}

// GetDataset returns the stored dataset record
func (s *ProfileService) GetDataset(ctx context.Context, id core.DatasetID) (*dataset.Dataset, error) {
	return s.repo.GetByID(ctx, id)
}

// GetProfile returns the stored profile for a dataset
func (s *ProfileService) GetProfile(ctx context.Context, id core.DatasetID) (*profile.Profile, error) {
	return s.repo.GetProfile(ctx, id)
}

// ListDatasets returns stored datasets, newest first
func (s *ProfileService) ListDatasets(ctx context.Context, limit, offset int) ([]*dataset.Dataset, error) {
	return s.repo.List(ctx, limit, offset)
}
