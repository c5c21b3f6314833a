package dataset

import (
	"time"

	"demandlens/domain/core"
)

// Record is one row of an uploaded table: column name to scalar cell value.
// Cells are float64, string, or nil; readers normalize everything else.
type Record map[string]any

// Table is the in-memory form of an uploaded demand table. Column order is
// the original file order and every record shares the same column set.
// The profiling engines treat a Table as immutable input.
type Table struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// Rows returns the number of records
func (t Table) Rows() int { return len(t.Records) }

// IsEmpty reports whether the table has no cells at all
func (t Table) IsEmpty() bool { return len(t.Records) == 0 || len(t.Columns) == 0 }

// Fingerprint returns the content hash used for profile memoization
func (t Table) Fingerprint() core.Fingerprint {
	rows := make([]map[string]any, len(t.Records))
	for i, r := range t.Records {
		rows[i] = r
	}
	return core.ComputeFingerprint(t.Columns, rows)
}

// IsMissing is the single missing-cell predicate shared by the classifier
// and the quality assessor: nil or empty string. A literal "0" or "false"
// is a value, not a gap.
func IsMissing(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// DatasetStatus represents the processing state of an uploaded dataset
type DatasetStatus string

const (
	StatusProcessing DatasetStatus = "processing"
	StatusReady      DatasetStatus = "ready"
	StatusFailed     DatasetStatus = "failed"
)

// Dataset is the host-side record of an upload. The profiling core never
// sees this type; it works on Table values only.
type Dataset struct {
	ID core.DatasetID `json:"id"`

	OriginalFilename string `json:"original_filename"`
	MimeType         string `json:"mime_type"`

	RecordCount int     `json:"record_count"`
	FieldCount  int     `json:"field_count"`
	MissingRate float64 `json:"missing_rate"`
	Source      string  `json:"source"` // "upload", "excel", "csv"

	Fingerprint core.Fingerprint `json:"fingerprint"`

	Status       DatasetStatus `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDataset creates a new dataset record with default values
func NewDataset(originalFilename string) *Dataset {
	return &Dataset{
		ID:               core.DatasetID(core.NewID()),
		OriginalFilename: originalFilename,
		Status:           StatusProcessing,
		Source:           "upload",
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
}

// IsReady returns true if the dataset finished profiling
func (d *Dataset) IsReady() bool {
	return d.Status == StatusReady
}
