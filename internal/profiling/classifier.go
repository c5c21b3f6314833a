package profiling

import (
	"math"
	"strconv"
	"strings"

	"demandlens/domain/dataset"
	"demandlens/domain/profile"
)

// temporalKeywords drive the name-based temporal column heuristic.
// Matching is case-insensitive, exact keyword before substring.
var temporalKeywords = []string{"date", "time"}

// Classification is the per-column type assignment for one table.
// TemporalColumn is the single designated temporal column ("" when none):
// the first column in original order whose name matches a temporal keyword.
type Classification struct {
	Types          map[string]profile.ColumnType
	TemporalColumn string
}

// HasTemporal reports whether a temporal column was designated
func (c Classification) HasTemporal() bool { return c.TemporalColumn != "" }

// Classify infers a semantic type for every column of the table.
//
// The temporal column is designated first by name; of the remaining
// columns, one is numeric iff every non-missing value parses as a real
// number and at least one value exists. Everything else, including fully
// empty columns, is categorical.
func Classify(t dataset.Table) Classification {
	cls := Classification{
		Types:          make(map[string]profile.ColumnType, len(t.Columns)),
		TemporalColumn: DetectTemporalColumn(t.Columns),
	}

	for _, col := range t.Columns {
		if col == cls.TemporalColumn {
			cls.Types[col] = profile.TypeTemporal
			continue
		}
		cls.Types[col] = classifyValues(t, col)
	}
	return cls
}

// DetectTemporalColumn returns the first column whose name matches a
// temporal keyword exactly, falling back to the first substring match.
// Only one column is ever designated, even when several names match.
func DetectTemporalColumn(columns []string) string {
	for _, col := range columns {
		lower := strings.ToLower(col)
		for _, kw := range temporalKeywords {
			if lower == kw {
				return col
			}
		}
	}
	for _, col := range columns {
		lower := strings.ToLower(col)
		for _, kw := range temporalKeywords {
			if strings.Contains(lower, kw) {
				return col
			}
		}
	}
	return ""
}

func classifyValues(t dataset.Table, col string) profile.ColumnType {
	seen := 0
	for _, rec := range t.Records {
		v := rec[col]
		if dataset.IsMissing(v) {
			continue
		}
		seen++
		if _, ok := ParseNumeric(v); !ok {
			return profile.TypeCategorical
		}
	}
	if seen == 0 {
		// nothing to parse, default to categorical
		return profile.TypeCategorical
	}
	return profile.TypeNumeric
}

// ParseNumeric converts a cell value to float64 when it represents a real
// number. Strings are parsed after trimming; booleans and other types do
// not count as numeric.
func ParseNumeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
