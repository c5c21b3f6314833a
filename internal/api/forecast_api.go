package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"demandlens/app"
	"demandlens/domain/forecast"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ForecastAPI is the machine-facing JSON surface over the forecast
// engines, kept separate from the gin dashboard so model services can
// post series without touching the UI stack.
type ForecastAPI struct {
	forecasts *app.ForecastService
}

// NewForecastAPI creates the API around a forecast service
func NewForecastAPI(forecasts *app.ForecastService) *ForecastAPI {
	return &ForecastAPI{forecasts: forecasts}
}

// Router builds the chi router for the API
func (a *ForecastAPI) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/v1/health", a.handleHealth)
	r.Post("/v1/forecast/validate", a.handleValidate)
	r.Post("/v1/forecast/recommendation", a.handleRecommendation)
	r.Post("/v1/forecast/review", a.handleReview)

	return r
}

// SeriesPayload is the wire form of a forecast series: ISO-8601 dates plus
// parallel numeric sequences.
type SeriesPayload struct {
	Dates       []string  `json:"dates"`
	Predictions []float64 `json:"predictions"`
	UpperBound  []float64 `json:"upper_bound,omitempty"`
	LowerBound  []float64 `json:"lower_bound,omitempty"`
	History     []float64 `json:"history,omitempty"`
}

// Series converts the payload into the domain type, validating the
// parallel-length invariants
func (p SeriesPayload) Series() (forecast.Series, []float64, error) {
	series := forecast.Series{
		Predictions: p.Predictions,
		UpperBound:  p.UpperBound,
		LowerBound:  p.LowerBound,
	}

	if len(p.Dates) != len(p.Predictions) {
		return series, nil, errLengthMismatch("dates", len(p.Dates), len(p.Predictions))
	}
	if len(p.UpperBound) > 0 && len(p.UpperBound) != len(p.Predictions) {
		return series, nil, errLengthMismatch("upper_bound", len(p.UpperBound), len(p.Predictions))
	}
	if len(p.LowerBound) > 0 && len(p.LowerBound) != len(p.Predictions) {
		return series, nil, errLengthMismatch("lower_bound", len(p.LowerBound), len(p.Predictions))
	}

	series.Dates = make([]time.Time, len(p.Dates))
	for i, raw := range p.Dates {
		ts, err := parseISODate(raw)
		if err != nil {
			return series, nil, err
		}
		series.Dates[i] = ts
	}
	return series, p.History, nil
}

func parseISODate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, &payloadError{message: "dates must be ISO-8601: " + raw}
}

type payloadError struct{ message string }

func (e *payloadError) Error() string { return e.message }

func errLengthMismatch(field string, got, want int) error {
	return &payloadError{message: fmt.Sprintf("%s length mismatch: %d entries for %d predictions", field, got, want)}
}

func (a *ForecastAPI) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *ForecastAPI) handleValidate(w http.ResponseWriter, r *http.Request) {
	series, history, ok := a.decodeSeries(w, r)
	if !ok {
		return
	}

	report := a.forecasts.Validate(series, history)
	if report == nil {
		// Nothing to check is not a zero score; say so explicitly.
		writeJSON(w, http.StatusOK, map[string]any{"applicable": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"applicable": true, "report": report})
}

func (a *ForecastAPI) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	series, _, ok := a.decodeSeries(w, r)
	if !ok {
		return
	}

	rec := a.forecasts.Recommend(series)
	if rec == nil {
		writeJSON(w, http.StatusOK, map[string]any{"applicable": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"applicable": true, "recommendation": rec})
}

func (a *ForecastAPI) handleReview(w http.ResponseWriter, r *http.Request) {
	series, history, ok := a.decodeSeries(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, a.forecasts.ReviewForecast(series, history))
}

func (a *ForecastAPI) decodeSeries(w http.ResponseWriter, r *http.Request) (forecast.Series, []float64, bool) {
	var payload SeriesPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return forecast.Series{}, nil, false
	}

	series, history, err := payload.Series()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return forecast.Series{}, nil, false
	}
	return series, history, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
