package profiling

import (
	"fmt"
	"math"
	"time"

	"demandlens/domain/dataset"
	"demandlens/domain/profile"
)

// Profiler turns an uploaded table into a quantitative Profile. It is a
// pure orchestrator over Classify, Describe, AssessQuality, and
// ScoreReadiness: no I/O, no state beyond the policy it was built with.
type Profiler struct {
	policy ReadinessPolicy
}

// NewProfiler creates a profiler with the given readiness policy
func NewProfiler(policy ReadinessPolicy) *Profiler {
	return &Profiler{policy: policy}
}

// Profile computes the complete profile for one table. An empty table
// yields the sentinel empty profile rather than an error.
func (p *Profiler) Profile(t dataset.Table) *profile.Profile {
	if t.IsEmpty() {
		return emptyProfile()
	}

	cls := Classify(t)
	summary := Describe(t, cls)
	quality := AssessQuality(t)

	dims := profile.Dimensions{
		Rows:         t.Rows(),
		Columns:      len(t.Columns),
		TimeSpanDays: timeSpanDays(t, cls.TemporalColumn),
	}

	readiness := ScoreReadiness(dims, quality, cls.HasTemporal(), p.policy)

	return &profile.Profile{
		Dimensions:           dims,
		DataQuality:          quality,
		StatisticalSummary:   summary,
		BusinessInsights:     businessInsights(dims, quality, summary),
		ForecastingReadiness: readiness,
	}
}

func emptyProfile() *profile.Profile {
	return &profile.Profile{
		Dimensions: profile.Dimensions{},
		DataQuality: profile.DataQuality{
			MissingByColumn: map[string]int{},
			Completeness:    0.0,
		},
		StatisticalSummary: []profile.ColumnStatistics{},
		BusinessInsights:   []string{},
		ForecastingReadiness: profile.ForecastingReadiness{
			Ready:           false,
			Message:         "Upload a table with at least one row to get a profile",
			Strengths:       []string{},
			Recommendations: []string{"Upload demand history with a date column and a demand column"},
		},
	}
}

// dateLayouts covers the formats the dashboard's upload paths produce
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"01-02-2006",
}

// timeSpanDays measures the calendar distance between the earliest and
// latest parseable value of the temporal column. 0 when there is no
// temporal column or fewer than two parseable dates.
func timeSpanDays(t dataset.Table, temporalColumn string) int {
	if temporalColumn == "" {
		return 0
	}

	var earliest, latest time.Time
	found := 0
	for _, rec := range t.Records {
		v := rec[temporalColumn]
		if dataset.IsMissing(v) {
			continue
		}
		ts, ok := parseTime(v)
		if !ok {
			continue
		}
		if found == 0 || ts.Before(earliest) {
			earliest = ts
		}
		if found == 0 || ts.After(latest) {
			latest = ts
		}
		found++
	}
	if found < 2 {
		return 0
	}
	return int(latest.Sub(earliest).Hours() / 24)
}

func parseTime(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// businessInsights renders a few plain-language observations for the
// dashboard's summary panel. Wording is presentation; the conditions are
// simple magnitude checks over already-computed statistics.
func businessInsights(dims profile.Dimensions, quality profile.DataQuality, summary []profile.ColumnStatistics) []string {
	insights := []string{
		fmt.Sprintf("Profiled %d records across %d columns", dims.Rows, dims.Columns),
	}

	if quality.MissingCount == 0 {
		insights = append(insights, "No missing values detected")
	} else {
		insights = append(insights,
			fmt.Sprintf("%d missing values (%.1f%% complete)", quality.MissingCount, quality.Completeness))
	}

	if dims.TimeSpanDays > 0 {
		insights = append(insights, fmt.Sprintf("History covers %d days", dims.TimeSpanDays))
	}

	// Coefficient of variation of the first numeric column as a rough
	// volatility signal for the demand series.
	for _, col := range summary {
		if !col.HasStats || col.Mean == 0 {
			continue
		}
		cv := col.StdDev / math.Abs(col.Mean) * 100
		switch {
		case cv > 50:
			insights = append(insights,
				fmt.Sprintf("%s is highly volatile (CV %.0f%%); plan generous safety stock", col.Name, cv))
		case cv > 20:
			insights = append(insights,
				fmt.Sprintf("%s shows moderate variability (CV %.0f%%)", col.Name, cv))
		default:
			insights = append(insights,
				fmt.Sprintf("%s is stable (CV %.0f%%); lean inventory is viable", col.Name, cv))
		}
		break
	}

	return insights
}
