package profile

// ColumnType is the semantic type the classifier assigns to a column.
// Exactly one classification per column.
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeTemporal    ColumnType = "temporal"
	TypeCategorical ColumnType = "categorical"
)

// ColumnStatistics holds the descriptive statistics for one column.
// Mean/StdDev/Min/Max are only populated for numeric columns with at least
// one value; HasStats distinguishes "computed zeros" from "not computed".
type ColumnStatistics struct {
	Name   string     `json:"name"`
	Type   ColumnType `json:"type"`
	Count  int        `json:"count"` // non-missing values
	Mean   float64    `json:"mean,omitempty"`
	StdDev float64    `json:"std_dev,omitempty"` // population (divisor = count)
	Min    float64    `json:"min,omitempty"`
	Max    float64    `json:"max,omitempty"`

	HasStats bool `json:"has_stats"`
}

// DataQuality summarizes missingness across the whole table
type DataQuality struct {
	MissingCount    int            `json:"missing_count"`
	MissingByColumn map[string]int `json:"missing_by_column"`
	Completeness    float64        `json:"completeness"` // percent, one decimal
}

// ForecastingReadiness is the rules-engine verdict on whether the table
// meets the minimum bars for forecasting
type ForecastingReadiness struct {
	Ready           bool     `json:"ready"`
	Message         string   `json:"message"`
	Strengths       []string `json:"strengths"`
	Recommendations []string `json:"recommendations"`
}

// Dimensions describes the table's shape and temporal extent
type Dimensions struct {
	Rows         int `json:"rows"`
	Columns      int `json:"columns"`
	TimeSpanDays int `json:"time_span_days"`
}

// Profile is the complete quantitative profile of an uploaded table.
// Invariant: len(StatisticalSummary) == Dimensions.Columns, one entry per
// column in original column order.
type Profile struct {
	Dimensions           Dimensions           `json:"dimensions"`
	DataQuality          DataQuality          `json:"data_quality"`
	StatisticalSummary   []ColumnStatistics   `json:"statistical_summary"`
	BusinessInsights     []string             `json:"business_insights"`
	ForecastingReadiness ForecastingReadiness `json:"forecasting_readiness"`
}

// TemporalColumn returns the designated temporal column's statistics entry,
// or nil when the classifier found none
func (p *Profile) TemporalColumn() *ColumnStatistics {
	for i := range p.StatisticalSummary {
		if p.StatisticalSummary[i].Type == TypeTemporal {
			return &p.StatisticalSummary[i]
		}
	}
	return nil
}
