package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"demandlens/domain/dataset"
	"demandlens/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader parses Excel and CSV uploads into tables
type DataReader struct{}

// NewDataReader creates a reader that handles both Excel and CSV streams
func NewDataReader() *DataReader {
	return &DataReader{}
}

// ReadTable reads an uploaded file into a Table. The filename extension
// selects the format: .csv is parsed as CSV, everything else goes through
// excelize.
func (r *DataReader) ReadTable(src io.Reader, filename string) (dataset.Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return r.readCSV(src)
	case ".xlsx", ".xls", "":
		return r.readExcel(src)
	default:
		return dataset.Table{}, errors.UnsupportedFormat(fmt.Sprintf("unsupported file type: %s", ext))
	}
}

func (r *DataReader) readExcel(src io.Reader) (dataset.Table, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return dataset.Table{}, errors.Wrap(err, "failed to open Excel stream")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return dataset.Table{}, errors.InvalidInput("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return dataset.Table{}, errors.Wrapf(err, "failed to read sheet %s", sheets[0])
	}
	log.Printf("[DataReader] Excel sheet %s read (%d rows)", sheets[0], len(rows))

	return r.assembleTable(rows)
}

func (r *DataReader) readCSV(src io.Reader) (dataset.Table, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1 // ragged rows are padded below

	rows, err := reader.ReadAll()
	if err != nil {
		return dataset.Table{}, errors.Wrap(err, "failed to read CSV stream")
	}
	log.Printf("[DataReader] CSV read (%d rows)", len(rows))

	return r.assembleTable(rows)
}

// assembleTable converts raw string rows into a Table: first row is the
// header, cells are trimmed, and short rows get empty cells so every record
// shares the full column set.
func (r *DataReader) assembleTable(rows [][]string) (dataset.Table, error) {
	if len(rows) < 2 {
		return dataset.Table{}, errors.InvalidInput("file must have a header row and at least one data row")
	}

	headerRow := rows[0]
	columns := make([]string, len(headerRow))
	for i, header := range headerRow {
		columns[i] = strings.TrimSpace(header)
	}

	records := make([]dataset.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(dataset.Record, len(columns))
		for j, col := range columns {
			if j < len(row) {
				record[col] = strings.TrimSpace(row[j])
			} else {
				record[col] = ""
			}
		}
		records = append(records, record)
	}

	return dataset.Table{Columns: columns, Records: records}, nil
}
