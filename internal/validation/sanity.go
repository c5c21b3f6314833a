package validation

import (
	"fmt"
	"math"

	"demandlens/domain/forecast"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Deductions per triggered check. Score starts at 100 and is plain
// subtraction with no floor; see the aggregation note on SanityReport.
const (
	deductNegativeValues = 40
	deductHistoryJump    = 20
	deductTrendDrift     = 10
	deductOutliers       = 15
)

// continuityJumpThreshold is the tolerated relative change between the last
// actual observation and the first predicted value.
const continuityJumpThreshold = 0.5

// trendSlopePctThreshold is the tolerated per-step OLS slope as a percent
// of the forecast mean.
const trendSlopePctThreshold = 10.0

// Validate runs the four plausibility checks over a forecast series and
// the tail of actual observations preceding it. It returns nil when the
// series has no predictions: "nothing to check" is distinct from a report
// that scored zero.
//
// Checks always run in fixed order (validity, continuity, trend, outliers);
// continuity is skipped entirely when no usable history value exists. The
// aggregate status is the worst status among the checks that ran.
func Validate(series forecast.Series, historyTail []float64) *forecast.SanityReport {
	if series.IsEmpty() {
		return nil
	}

	report := &forecast.SanityReport{
		Checks: []forecast.CheckResult{},
		Score:  100,
		Status: forecast.StatusPass,
	}

	record := func(result forecast.CheckResult, deduction int) {
		report.Checks = append(report.Checks, result)
		if result.Status != forecast.StatusPass {
			report.Score -= deduction
		}
		if result.Status.WorseThan(report.Status) {
			report.Status = result.Status
		}
	}

	record(checkNumericValidity(series.Predictions), deductNegativeValues)

	if result, evaluated := checkHistoryContinuity(series.Predictions, historyTail); evaluated {
		record(result, deductHistoryJump)
	}

	if len(series.Predictions) > 1 {
		record(checkTrendStability(series.Predictions), deductTrendDrift)
	}

	record(checkOutliers(series.Predictions), deductOutliers)

	return report
}

// checkNumericValidity fails when any prediction is negative. Demand
// cannot be physically negative, so this is the only hard failure.
func checkNumericValidity(predictions []float64) forecast.CheckResult {
	negatives := 0
	for _, v := range predictions {
		if v < 0 {
			negatives++
		}
	}

	result := forecast.CheckResult{
		ID:   forecast.CheckValidity,
		Name: "Numeric Validity",
	}
	if negatives > 0 {
		result.Status = forecast.StatusFail
		result.Message = fmt.Sprintf("%d negative predicted values; demand cannot be negative", negatives)
	} else {
		result.Status = forecast.StatusPass
		result.Message = "All predictions are non-negative"
	}
	return result
}

// checkHistoryContinuity warns when the forecast opens with a jump of more
// than 50% relative to the last actual observation. Not evaluated (second
// return false) when history is empty or its last value is not positive.
func checkHistoryContinuity(predictions, historyTail []float64) (forecast.CheckResult, bool) {
	if len(historyTail) == 0 {
		return forecast.CheckResult{}, false
	}
	last := historyTail[len(historyTail)-1]
	if last <= 0 {
		return forecast.CheckResult{}, false
	}

	pctChange := math.Abs(predictions[0]-last) / last

	result := forecast.CheckResult{
		ID:   forecast.CheckContinuity,
		Name: "History Continuity",
	}
	if pctChange > continuityJumpThreshold {
		result.Status = forecast.StatusWarn
		result.Message = fmt.Sprintf("Forecast opens %.0f%% away from the last actual value", pctChange*100)
	} else {
		result.Status = forecast.StatusPass
		result.Message = "Forecast continues smoothly from history"
	}
	return result, true
}

// checkTrendStability fits an OLS line over the predictions and warns when
// the per-step slope exceeds 10% of the forecast mean. Callers only invoke
// this with more than one prediction.
func checkTrendStability(predictions []float64) forecast.CheckResult {
	idx := make([]float64, len(predictions))
	for i := range idx {
		idx[i] = float64(i)
	}
	_, slope := stat.LinearRegression(idx, predictions, nil, false)

	mean, _ := stats.Mean(predictions)
	slopePct := 0.0
	if mean != 0 {
		slopePct = slope / mean * 100
	}

	result := forecast.CheckResult{
		ID:   forecast.CheckTrend,
		Name: "Trend Stability",
	}
	if math.Abs(slopePct) > trendSlopePctThreshold {
		result.Status = forecast.StatusWarn
		result.Message = fmt.Sprintf("Trend drifts %.1f%% of mean per step", slopePct)
	} else {
		result.Status = forecast.StatusPass
		result.Message = "Trend is stable over the horizon"
	}
	return result
}

// checkOutliers warns when any prediction sits more than three population
// standard deviations from the forecast mean. A flat series (zero std)
// has no outliers by construction.
func checkOutliers(predictions []float64) forecast.CheckResult {
	mean, _ := stats.Mean(predictions)
	stdDev, _ := stats.StandardDeviationPopulation(predictions)

	outliers := 0
	if stdDev > 0 {
		for _, v := range predictions {
			if math.Abs(v-mean) > 3*stdDev {
				outliers++
			}
		}
	}

	result := forecast.CheckResult{
		ID:   forecast.CheckOutliers,
		Name: "Outlier Detection",
	}
	if outliers > 0 {
		result.Status = forecast.StatusWarn
		result.Message = fmt.Sprintf("%d predictions beyond 3 standard deviations", outliers)
	} else {
		result.Status = forecast.StatusPass
		result.Message = "No extreme values in the forecast"
	}
	return result
}
