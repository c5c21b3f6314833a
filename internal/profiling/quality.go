package profiling

import (
	"math"

	"demandlens/domain/dataset"
	"demandlens/domain/profile"
)

// AssessQuality scans every cell of the table and summarizes missingness.
// Completeness is (1 - missing/(rows*columns)) * 100 rounded to one
// decimal, and defined as 0.0 for a table with no cells.
func AssessQuality(t dataset.Table) profile.DataQuality {
	quality := profile.DataQuality{
		MissingByColumn: make(map[string]int, len(t.Columns)),
	}

	for _, col := range t.Columns {
		missing := 0
		for _, rec := range t.Records {
			if dataset.IsMissing(rec[col]) {
				missing++
			}
		}
		quality.MissingByColumn[col] = missing
		quality.MissingCount += missing
	}

	totalCells := len(t.Records) * len(t.Columns)
	if totalCells == 0 {
		quality.Completeness = 0.0
		return quality
	}

	completeness := (1.0 - float64(quality.MissingCount)/float64(totalCells)) * 100.0
	quality.Completeness = math.Round(completeness*10) / 10
	return quality
}
