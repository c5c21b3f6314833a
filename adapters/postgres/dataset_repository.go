package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"demandlens/domain/core"
	"demandlens/domain/dataset"
	"demandlens/domain/profile"
	"demandlens/ports"

	"github.com/jmoiron/sqlx"
)

// datasetRepository implements ports.DatasetRepository on postgres
type datasetRepository struct {
	db *sqlx.DB
}

// NewDatasetRepository creates a new dataset repository
func NewDatasetRepository(db *sqlx.DB) ports.DatasetRepository {
	return &datasetRepository{db: db}
}

// EnsureSchema creates the tables the repository needs. Idempotent; called
// once at startup.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS datasets (
			id TEXT PRIMARY KEY,
			original_filename TEXT NOT NULL,
			mime_type TEXT NOT NULL DEFAULT '',
			record_count INT NOT NULL DEFAULT 0,
			field_count INT NOT NULL DEFAULT 0,
			missing_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
			source TEXT NOT NULL DEFAULT 'upload',
			fingerprint TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			error_message TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS dataset_profiles (
			dataset_id TEXT PRIMARY KEY REFERENCES datasets(id) ON DELETE CASCADE,
			profile JSONB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_datasets_fingerprint ON datasets(fingerprint)`,
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// Create inserts a new dataset record
func (r *datasetRepository) Create(ctx context.Context, ds *dataset.Dataset) error {
	query := `INSERT INTO datasets (
		id, original_filename, mime_type, record_count, field_count, missing_rate,
		source, fingerprint, status, error_message, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		ds.ID, ds.OriginalFilename, ds.MimeType, ds.RecordCount, ds.FieldCount, ds.MissingRate,
		ds.Source, ds.Fingerprint, ds.Status, ds.ErrorMessage, ds.CreatedAt, ds.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}
	return nil
}

// Update rewrites the mutable fields of a dataset record
func (r *datasetRepository) Update(ctx context.Context, ds *dataset.Dataset) error {
	query := `UPDATE datasets SET
		record_count = $2, field_count = $3, missing_rate = $4,
		fingerprint = $5, status = $6, error_message = $7, updated_at = $8
	WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		ds.ID, ds.RecordCount, ds.FieldCount, ds.MissingRate,
		ds.Fingerprint, ds.Status, ds.ErrorMessage, ds.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update dataset: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("dataset not found: %s", ds.ID)
	}
	return nil
}

// GetByID retrieves a dataset by its ID
func (r *datasetRepository) GetByID(ctx context.Context, id core.DatasetID) (*dataset.Dataset, error) {
	query := `SELECT
		id, original_filename, mime_type, record_count, field_count, missing_rate,
		source, fingerprint, status, error_message, created_at, updated_at
	FROM datasets WHERE id = $1`

	var ds dataset.Dataset
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ds.ID, &ds.OriginalFilename, &ds.MimeType, &ds.RecordCount, &ds.FieldCount, &ds.MissingRate,
		&ds.Source, &ds.Fingerprint, &ds.Status, &ds.ErrorMessage, &ds.CreatedAt, &ds.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("dataset not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}
	return &ds, nil
}

// List retrieves datasets newest first with pagination
func (r *datasetRepository) List(ctx context.Context, limit, offset int) ([]*dataset.Dataset, error) {
	query := `SELECT
		id, original_filename, mime_type, record_count, field_count, missing_rate,
		source, fingerprint, status, error_message, created_at, updated_at
	FROM datasets
	ORDER BY created_at DESC
	LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	var datasets []*dataset.Dataset
	for rows.Next() {
		var ds dataset.Dataset
		err := rows.Scan(
			&ds.ID, &ds.OriginalFilename, &ds.MimeType, &ds.RecordCount, &ds.FieldCount, &ds.MissingRate,
			&ds.Source, &ds.Fingerprint, &ds.Status, &ds.ErrorMessage, &ds.CreatedAt, &ds.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		datasets = append(datasets, &ds)
	}
	return datasets, rows.Err()
}

// SaveProfile upserts the computed profile for a dataset
func (r *datasetRepository) SaveProfile(ctx context.Context, id core.DatasetID, p *profile.Profile) error {
	profileJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	query := `INSERT INTO dataset_profiles (dataset_id, profile)
	VALUES ($1, $2)
	ON CONFLICT (dataset_id) DO UPDATE SET profile = EXCLUDED.profile`

	if _, err := r.db.ExecContext(ctx, query, id, profileJSON); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// GetProfile loads the stored profile for a dataset
func (r *datasetRepository) GetProfile(ctx context.Context, id core.DatasetID) (*profile.Profile, error) {
	var profileJSON []byte
	err := r.db.QueryRowContext(ctx, `SELECT profile FROM dataset_profiles WHERE dataset_id = $1`, id).Scan(&profileJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("profile not found for dataset: %s", id)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var p profile.Profile
	if err := json.Unmarshal(profileJSON, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &p, nil
}
