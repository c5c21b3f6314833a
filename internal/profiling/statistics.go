package profiling

import (
	"demandlens/domain/dataset"
	"demandlens/domain/profile"

	"github.com/montanaflynn/stats"
)

// Describe computes the descriptive statistics for every column, in the
// table's original column order.
//
// Numeric columns get count/mean/population-std/min/max; all other columns
// only get their non-missing count. A numeric column with zero values keeps
// HasStats=false rather than erroring.
func Describe(t dataset.Table, cls Classification) []profile.ColumnStatistics {
	summary := make([]profile.ColumnStatistics, 0, len(t.Columns))

	for _, col := range t.Columns {
		colType := cls.Types[col]
		entry := profile.ColumnStatistics{
			Name: col,
			Type: colType,
		}

		if colType != profile.TypeNumeric {
			entry.Count = countPresent(t, col)
			summary = append(summary, entry)
			continue
		}

		values := collectNumeric(t, col)
		entry.Count = len(values)
		if len(values) > 0 {
			mean, _ := stats.Mean(values)
			stdDev, _ := stats.StandardDeviationPopulation(values)
			min, _ := stats.Min(values)
			max, _ := stats.Max(values)

			entry.Mean = mean
			entry.StdDev = stdDev
			entry.Min = min
			entry.Max = max
			entry.HasStats = true
		}
		summary = append(summary, entry)
	}
	return summary
}

func countPresent(t dataset.Table, col string) int {
	count := 0
	for _, rec := range t.Records {
		if !dataset.IsMissing(rec[col]) {
			count++
		}
	}
	return count
}

func collectNumeric(t dataset.Table, col string) []float64 {
	var values []float64
	for _, rec := range t.Records {
		v := rec[col]
		if dataset.IsMissing(v) {
			continue
		}
		if f, ok := ParseNumeric(v); ok {
			values = append(values, f)
		}
	}
	return values
}
