package profiling

import (
	"fmt"

	"demandlens/domain/profile"
)

// ReadinessPolicy holds the thresholds behind the readiness verdict.
// Thresholds always travel as explicit values; nothing in this package
// reads ambient configuration.
type ReadinessPolicy struct {
	Name        string
	Threshold   float64 // completeness percent, exclusive lower bound
	MinimumRows int     // exclusive lower bound
}

// PermissivePolicy is the default review policy (informal review)
func PermissivePolicy() ReadinessPolicy {
	return ReadinessPolicy{Name: "permissive", Threshold: 85, MinimumRows: 30}
}

// StrictPolicy raises the bar for formal forecast sign-off
func StrictPolicy() ReadinessPolicy {
	return ReadinessPolicy{Name: "strict", Threshold: 90, MinimumRows: 50}
}

// PolicyFromName resolves a configured policy name, defaulting to permissive
func PolicyFromName(name string) ReadinessPolicy {
	if name == "strict" {
		return StrictPolicy()
	}
	return PermissivePolicy()
}

// ScoreReadiness combines row count, completeness, and temporal structure
// into a verdict with human-readable guidance. This is deliberately a rules
// engine: the wording is presentation, the branching thresholds are the
// contract.
func ScoreReadiness(dims profile.Dimensions, quality profile.DataQuality, hasTemporal bool, policy ReadinessPolicy) profile.ForecastingReadiness {
	readiness := profile.ForecastingReadiness{
		Strengths:       []string{},
		Recommendations: []string{},
	}

	readiness.Ready = quality.Completeness > policy.Threshold &&
		dims.Rows > policy.MinimumRows &&
		hasTemporal

	// Row volume
	if dims.Rows > policy.MinimumRows {
		readiness.Strengths = append(readiness.Strengths,
			fmt.Sprintf("%d records give the model a workable training history", dims.Rows))
	} else {
		readiness.Recommendations = append(readiness.Recommendations,
			fmt.Sprintf("Collect more history: %d records is below the %d-row minimum", dims.Rows, policy.MinimumRows))
	}

	// Completeness
	if quality.Completeness > policy.Threshold {
		readiness.Strengths = append(readiness.Strengths,
			fmt.Sprintf("Data is %.1f%% complete", quality.Completeness))
	} else {
		readiness.Recommendations = append(readiness.Recommendations,
			fmt.Sprintf("Fill or drop missing values: completeness %.1f%% is below the %.0f%% bar", quality.Completeness, policy.Threshold))
	}

	// Temporal structure
	switch {
	case !hasTemporal:
		readiness.Recommendations = append(readiness.Recommendations,
			"Add a date or time column so forecasts can be anchored to a calendar")
	case dims.TimeSpanDays > 365:
		readiness.Strengths = append(readiness.Strengths,
			fmt.Sprintf("History spans %d days, enough to capture annual seasonality", dims.TimeSpanDays))
	default:
		readiness.Strengths = append(readiness.Strengths,
			fmt.Sprintf("History spans %d days, suitable for short-term forecasting", dims.TimeSpanDays))
	}

	if readiness.Ready {
		readiness.Message = "Dataset is ready for demand forecasting"
	} else {
		readiness.Message = "Dataset needs attention before forecasting"
	}
	return readiness
}
