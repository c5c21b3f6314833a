package app

import (
	"demandlens/domain/forecast"
	"demandlens/internal/inventory"
	"demandlens/internal/validation"
)

// ForecastService fronts the sanity validator and the inventory
// synthesizer for the HTTP layers. Both engines are pure; this service
// only adds input normalization.
type ForecastService struct{}

// NewForecastService creates a forecast review service
func NewForecastService() *ForecastService {
	return &ForecastService{}
}

// Review is the combined output for one forecast: the sanity report and,
// when the series is non-empty, the inventory rollup. Report is nil when
// there was nothing to check.
type Review struct {
	Report         *forecast.SanityReport   `json:"report"`
	Recommendation *forecast.Recommendation `json:"recommendation,omitempty"`
}

// Validate runs the sanity checks over a forecast and its historical tail
func (s *ForecastService) Validate(series forecast.Series, historyTail []float64) *forecast.SanityReport {
	return validation.Validate(series, historyTail)
}

// Recommend derives the short-horizon inventory rollup
func (s *ForecastService) Recommend(series forecast.Series) *forecast.Recommendation {
	return inventory.Synthesize(series)
}

// ReviewForecast runs validation and recommendation together, the way the
// dashboard's forecast page consumes them
func (s *ForecastService) ReviewForecast(series forecast.Series, historyTail []float64) Review {
	return Review{
		Report:         s.Validate(series, historyTail),
		Recommendation: s.Recommend(series),
	}
}
