package ports

import (
	"context"

	"demandlens/domain/core"
	"demandlens/domain/dataset"
	"demandlens/domain/profile"
)

// DatasetRepository stores uploaded dataset records and their computed
// profiles so the dashboard can reload without recomputing. The profiling
// core never touches this port; only the app layer does.
type DatasetRepository interface {
	Create(ctx context.Context, ds *dataset.Dataset) error
	Update(ctx context.Context, ds *dataset.Dataset) error
	GetByID(ctx context.Context, id core.DatasetID) (*dataset.Dataset, error)
	List(ctx context.Context, limit, offset int) ([]*dataset.Dataset, error)

	SaveProfile(ctx context.Context, id core.DatasetID, p *profile.Profile) error
	GetProfile(ctx context.Context, id core.DatasetID) (*profile.Profile, error)
}
