package inventory

import (
	"math"

	"demandlens/domain/forecast"
)

// Horizon and buffer constants for the short-horizon rollup. The synthesizer
// plans at most one week ahead; beyond that the forecast's own uncertainty
// dominates any stocking arithmetic.
const (
	maxHorizonDays   = 7
	upperBoundFactor = 1.15 // stand-in upper bound when the model gave none
	minSafetyRatio   = 0.10
	reorderFraction  = 0.5

	highRiskRatio   = 0.30
	mediumRiskRatio = 0.15
)

// Synthesize derives stock, safety-stock, and reorder figures from a
// forecast series. It emits a single rollup over the horizon; per-product
// breakdowns would need a segmented forecast, which the series does not
// carry. Returns nil for an empty series.
func Synthesize(series forecast.Series) *forecast.Recommendation {
	if series.IsEmpty() {
		return nil
	}

	horizon := maxHorizonDays
	if series.Len() < horizon {
		horizon = series.Len()
	}

	recommendedStock := 0.0
	upperSum := 0.0
	for i := 0; i < horizon; i++ {
		recommendedStock += series.Predictions[i]
		if len(series.UpperBound) > i {
			upperSum += series.UpperBound[i]
		} else {
			upperSum += series.Predictions[i] * upperBoundFactor
		}
	}

	safetyStock := math.Max(upperSum-recommendedStock, recommendedStock*minSafetyRatio)
	reorderPoint := recommendedStock*reorderFraction + safetyStock
	riskRatio := safetyStock / math.Max(recommendedStock, 1)

	return &forecast.Recommendation{
		HorizonDays:      horizon,
		RecommendedStock: recommendedStock,
		SafetyStock:      safetyStock,
		ReorderPoint:     reorderPoint,
		RiskRatio:        riskRatio,
		Risk:             classifyRisk(riskRatio),
	}
}

// classifyRisk buckets the safety-stock ratio. The medium boundary is
// inclusive: a ratio of exactly 0.15 already signals buffer-heavy stocking.
func classifyRisk(ratio float64) forecast.RiskLevel {
	switch {
	case ratio > highRiskRatio:
		return forecast.RiskHigh
	case ratio >= mediumRiskRatio:
		return forecast.RiskMedium
	default:
		return forecast.RiskLow
	}
}
