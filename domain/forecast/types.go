package forecast

import "time"

// Series is a generated forecast as delivered by an external model service.
// Invariant: len(Predictions) == len(Dates); bounds, when present, share the
// same length.
type Series struct {
	Dates       []time.Time `json:"dates"`
	Predictions []float64   `json:"predictions"`
	UpperBound  []float64   `json:"upper_bound,omitempty"`
	LowerBound  []float64   `json:"lower_bound,omitempty"`
}

// Len returns the forecast horizon length
func (s Series) Len() int { return len(s.Predictions) }

// IsEmpty reports whether there is anything to check
func (s Series) IsEmpty() bool { return len(s.Predictions) == 0 }

// CheckStatus is the outcome of a single sanity check
type CheckStatus string

const (
	StatusPass CheckStatus = "pass"
	StatusWarn CheckStatus = "warn"
	StatusFail CheckStatus = "fail"
)

// severity ordering: fail > warn > pass
func (s CheckStatus) severity() int {
	switch s {
	case StatusFail:
		return 2
	case StatusWarn:
		return 1
	default:
		return 0
	}
}

// WorseThan reports whether s is more severe than other
func (s CheckStatus) WorseThan(other CheckStatus) bool {
	return s.severity() > other.severity()
}

// Check identifiers, stable across releases; renderers key on these.
const (
	CheckValidity   = "numeric_validity"
	CheckContinuity = "history_continuity"
	CheckTrend      = "trend_stability"
	CheckOutliers   = "outlier_detection"
)

// CheckResult is one sanity check's verdict
type CheckResult struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Status  CheckStatus `json:"status"`
	Message string      `json:"message"`
}

// SanityReport aggregates the sanity checks over one forecast series.
// Checks appear in fixed order: validity, continuity, trend, outliers
// (continuity is absent when no usable history was supplied). Score is
// 100 minus the triggered deductions, deliberately not clamped.
type SanityReport struct {
	Checks []CheckResult `json:"checks"`
	Score  int           `json:"score"`
	Status CheckStatus   `json:"status"`
}

// RiskLevel classifies the safety-stock ratio of a recommendation
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Recommendation is the short-horizon inventory rollup derived from a
// forecast series
type Recommendation struct {
	HorizonDays      int       `json:"horizon_days"`
	RecommendedStock float64   `json:"recommended_stock"`
	SafetyStock      float64   `json:"safety_stock"`
	ReorderPoint     float64   `json:"reorder_point"`
	RiskRatio        float64   `json:"risk_ratio"`
	Risk             RiskLevel `json:"risk"`
}
