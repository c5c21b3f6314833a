package export

import (
	"bytes"
	"fmt"

	"demandlens/domain/dataset"
	"demandlens/domain/profile"
	"demandlens/internal/errors"

	"github.com/xuri/excelize/v2"
)

// ProfileWorkbook renders a dataset profile as an xlsx workbook with an
// overview sheet and a per-column statistics sheet. Returned as a buffer
// so handlers can stream it without touching disk.
func ProfileWorkbook(ds *dataset.Dataset, p *profile.Profile) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	overview := "Overview"
	if err := f.SetSheetName("Sheet1", overview); err != nil {
		return nil, errors.Wrap(err, "failed to prepare workbook")
	}

	overviewRows := [][]any{
		{"Dataset", ds.OriginalFilename},
		{"Rows", p.Dimensions.Rows},
		{"Columns", p.Dimensions.Columns},
		{"Time span (days)", p.Dimensions.TimeSpanDays},
		{"Completeness (%)", p.DataQuality.Completeness},
		{"Missing cells", p.DataQuality.MissingCount},
		{"Forecast ready", p.ForecastingReadiness.Ready},
		{"Readiness note", p.ForecastingReadiness.Message},
	}
	for i, row := range overviewRows {
		if err := writeRow(f, overview, i+1, row); err != nil {
			return nil, err
		}
	}

	columns := "Columns"
	if _, err := f.NewSheet(columns); err != nil {
		return nil, errors.Wrap(err, "failed to prepare workbook")
	}
	header := []any{"Column", "Type", "Present", "Missing", "Mean", "Std Dev", "Min", "Max"}
	if err := writeRow(f, columns, 1, header); err != nil {
		return nil, err
	}
	for i, cs := range p.StatisticalSummary {
		row := []any{
			cs.Name,
			string(cs.Type),
			cs.Count,
			p.DataQuality.MissingByColumn[cs.Name],
		}
		if cs.HasStats {
			row = append(row, cs.Mean, cs.StdDev, cs.Min, cs.Max)
		} else {
			row = append(row, "", "", "", "")
		}
		if err := writeRow(f, columns, i+2, row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to serialize workbook")
	}
	return &buf, nil
}

func writeRow(f *excelize.File, sheet string, rowIdx int, values []any) error {
	for c, v := range values {
		cell, err := excelize.CoordinatesToCellName(c+1, rowIdx)
		if err != nil {
			return errors.Wrap(err, "bad cell coordinates")
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return errors.Wrap(err, fmt.Sprintf("failed to write %s!%s", sheet, cell))
		}
	}
	return nil
}
