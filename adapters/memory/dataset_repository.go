package memory

import (
	"context"
	"sort"
	"sync"

	"demandlens/domain/core"
	"demandlens/domain/dataset"
	"demandlens/domain/profile"
	"demandlens/internal/errors"
	"demandlens/ports"
)

// datasetRepository is the in-memory fallback used when no DATABASE_URL is
// configured. Good for demos and tests; everything is lost on restart.
type datasetRepository struct {
	mu       sync.RWMutex
	datasets map[core.DatasetID]*dataset.Dataset
	profiles map[core.DatasetID]*profile.Profile
}

// NewDatasetRepository creates an empty in-memory repository
func NewDatasetRepository() ports.DatasetRepository {
	return &datasetRepository{
		datasets: make(map[core.DatasetID]*dataset.Dataset),
		profiles: make(map[core.DatasetID]*profile.Profile),
	}
}

func (r *datasetRepository) Create(ctx context.Context, ds *dataset.Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *ds
	r.datasets[ds.ID] = &clone
	return nil
}

func (r *datasetRepository) Update(ctx context.Context, ds *dataset.Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.datasets[ds.ID]; !ok {
		return errors.NotFound("dataset")
	}
	clone := *ds
	r.datasets[ds.ID] = &clone
	return nil
}

func (r *datasetRepository) GetByID(ctx context.Context, id core.DatasetID) (*dataset.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ds, ok := r.datasets[id]
	if !ok {
		return nil, errors.NotFound("dataset")
	}
	clone := *ds
	return &clone, nil
}

func (r *datasetRepository) List(ctx context.Context, limit, offset int) ([]*dataset.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*dataset.Dataset, 0, len(r.datasets))
	for _, ds := range r.datasets {
		clone := *ds
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []*dataset.Dataset{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *datasetRepository) SaveProfile(ctx context.Context, id core.DatasetID, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[id] = p
	return nil
}

func (r *datasetRepository) GetProfile(ctx context.Context, id core.DatasetID) (*profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, errors.NotFound("profile")
	}
	return p, nil
}
