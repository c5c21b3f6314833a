package ports

import (
	"io"

	"demandlens/domain/dataset"
)

// TableReader parses an uploaded spreadsheet or CSV stream into a Table.
// Implementations own format detection; callers pass the original filename
// so the extension can drive it.
type TableReader interface {
	ReadTable(r io.Reader, filename string) (dataset.Table, error)
}
