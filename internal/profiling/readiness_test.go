package profiling

import (
	"strings"
	"testing"

	"demandlens/domain/profile"
)

func TestScoreReadiness_PermissiveReady(t *testing.T) {
	dims := profile.Dimensions{Rows: 120, Columns: 3, TimeSpanDays: 119}
	quality := profile.DataQuality{Completeness: 98.5}

	readiness := ScoreReadiness(dims, quality, true, PermissivePolicy())
	if !readiness.Ready {
		t.Errorf("Expected ready verdict, got %+v", readiness)
	}
	if len(readiness.Strengths) == 0 {
		t.Error("Ready dataset should list strengths")
	}
}

func TestScoreReadiness_StrictPolicyRaisesTheBar(t *testing.T) {
	// 40 rows, 88% complete: passes permissive (>30, >85) but not strict
	// (>50, >90).
	dims := profile.Dimensions{Rows: 40, Columns: 3, TimeSpanDays: 39}
	quality := profile.DataQuality{Completeness: 88.0}

	if r := ScoreReadiness(dims, quality, true, PermissivePolicy()); !r.Ready {
		t.Errorf("Permissive policy should accept 40 rows at 88%%: %+v", r)
	}
	if r := ScoreReadiness(dims, quality, true, StrictPolicy()); r.Ready {
		t.Errorf("Strict policy should reject 40 rows at 88%%: %+v", r)
	}
}

func TestScoreReadiness_ThresholdsAreExclusive(t *testing.T) {
	// Exactly at the bar fails: the predicate is strictly greater-than.
	dims := profile.Dimensions{Rows: 30, Columns: 2}
	quality := profile.DataQuality{Completeness: 85.0}

	if r := ScoreReadiness(dims, quality, true, PermissivePolicy()); r.Ready {
		t.Errorf("Completeness=85 and rows=30 should not be ready under permissive: %+v", r)
	}
}

func TestScoreReadiness_MissingTemporalColumnBlocksReadiness(t *testing.T) {
	dims := profile.Dimensions{Rows: 500, Columns: 4}
	quality := profile.DataQuality{Completeness: 100.0}

	readiness := ScoreReadiness(dims, quality, false, PermissivePolicy())
	if readiness.Ready {
		t.Error("No temporal column should block readiness regardless of size")
	}
	if !containsSubstring(readiness.Recommendations, "date") {
		t.Errorf("Expected a date-column recommendation, got %v", readiness.Recommendations)
	}
}

func TestScoreReadiness_AnnualSeasonalityBranch(t *testing.T) {
	quality := profile.DataQuality{Completeness: 99.0}

	long := ScoreReadiness(profile.Dimensions{Rows: 400, TimeSpanDays: 730}, quality, true, PermissivePolicy())
	if !containsSubstring(long.Strengths, "annual seasonality") {
		t.Errorf("Span > 365 days should unlock the annual seasonality note, got %v", long.Strengths)
	}

	short := ScoreReadiness(profile.Dimensions{Rows: 90, TimeSpanDays: 89}, quality, true, PermissivePolicy())
	if !containsSubstring(short.Strengths, "short-term") {
		t.Errorf("Span <= 365 days should note short-term forecasting, got %v", short.Strengths)
	}
}

func TestPolicyFromName(t *testing.T) {
	if p := PolicyFromName("strict"); p.Threshold != 90 || p.MinimumRows != 50 {
		t.Errorf("Unexpected strict preset: %+v", p)
	}
	if p := PolicyFromName("anything-else"); p.Threshold != 85 || p.MinimumRows != 30 {
		t.Errorf("Unknown names should fall back to permissive: %+v", p)
	}
}

func containsSubstring(items []string, substr string) bool {
	for _, s := range items {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
