package engine

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/nuptial/flightcast/internal/metrics"
	"github.com/nuptial/flightcast/internal/models"
	"github.com/nuptial/flightcast/internal/taxa"
	"github.com/nuptial/flightcast/internal/weather"
)

const (
	// LookbackHours of observed weather prepended to the forecast horizon,
	// used for the rain-recency and pressure-trend features.
	LookbackHours = 72

	DefaultDays = 7
	MaxDays     = 16
)

// WeatherSource supplies an hourly series for a location and window. It is
// the engine's only blocking collaborator.
type WeatherSource interface {
	FetchHourly(ctx context.Context, lat, lon float64, pastHours, forecastHours int) ([]models.HourlyObservation, error)
}

// SightingSource is a queryable snapshot of the sightings log.
type SightingSource interface {
	ListSightings() ([]models.Sighting, error)
}

// ClampNotice reports that a requested horizon exceeded the maximum and was
// silently reduced. It travels out-of-band, not inside the forecast days.
type ClampNotice struct {
	RequestedDays int `json:"requested_days"`
	AppliedDays   int `json:"applied_days"`
}

// Result is a complete forecast for one location. Aggregates are the daily
// weather summaries the predictions were derived from, index-aligned with
// Days.
type Result struct {
	Days       []models.PredictionDay  `json:"days"`
	Aggregates []models.DailyAggregate `json:"weather"`
	Synthetic  bool                    `json:"synthetic_weather"`
	Notice     *ClampNotice            `json:"notice,omitempty"`
}

// Engine drives the forecasting pipeline: weather aggregation, per-day
// feature assembly, and the two scoring models.
type Engine struct {
	weather   WeatherSource
	sightings SightingSource
	catalog   []taxa.Profile
}

func New(w WeatherSource, s SightingSource) *Engine {
	return &Engine{weather: w, sightings: s, catalog: taxa.Catalog()}
}

// NewWithCatalog is used by tests that need a fixture catalog.
func NewWithCatalog(w WeatherSource, s SightingSource, catalog []taxa.Profile) *Engine {
	return &Engine{weather: w, sightings: s, catalog: catalog}
}

// Forecast produces a ranked daily forecast for the location. A horizon above
// MaxDays is clamped with a notice; a horizon below 1 is raised to 1. Weather
// collaborator failure is recovered by the synthetic series and never
// surfaced to the caller.
func (e *Engine) Forecast(ctx context.Context, lat, lon float64, days int) (*Result, error) {
	result := &Result{}
	if days > MaxDays {
		result.Notice = &ClampNotice{RequestedDays: days, AppliedDays: MaxDays}
		days = MaxDays
	}
	if days < 1 {
		days = 1
	}

	series, err := e.weather.FetchHourly(ctx, lat, lon, LookbackHours, days*24)
	if err != nil || len(series) == 0 {
		log.Printf("forecast: weather fetch failed, using synthetic series: %v", err)
		metrics.WeatherFallbacks.Inc()
		start := time.Now().UTC().Add(-LookbackHours * time.Hour)
		series = weather.SyntheticSeries(start, LookbackHours+days*24)
		result.Synthetic = true
	}

	trends := weather.Trends(series)
	aggregates := weather.DailyAggregates(series, days)

	sightings, err := e.sightings.ListSightings()
	if err != nil {
		return nil, fmt.Errorf("list sightings: %w", err)
	}

	for _, agg := range aggregates {
		date, err := time.Parse("2006-01-02", agg.Date)
		if err != nil {
			return nil, fmt.Errorf("parse aggregate date %q: %w", agg.Date, err)
		}

		features := models.FeatureVector{
			TempMax:        agg.TempMax,
			HumidityMean:   agg.HumidityMean,
			HoursSinceRain: trends.HoursSinceRain,
			WindMax:        agg.WindMax,
			PressureTrend:  trends.PressureTrend,
			Month:          date.Month(),
			SightingsBoost: SightingsBoost(lat, lon, date, sightings),
		}

		result.Days = append(result.Days, e.predictDay(agg.Date, features))
		result.Aggregates = append(result.Aggregates, agg)
	}

	return result, nil
}

// predictDay runs both models over one feature vector and assembles the
// ranked top-5 list. Probabilities are rounded to 3 decimals before the sort,
// so rounding-induced ties resolve by catalog order.
func (e *Engine) predictDay(date string, f models.FeatureVector) models.PredictionDay {
	global := FlightProbability(f)
	shares := RelativeShares(f, e.catalog)

	predictions := make([]models.TaxonPrediction, len(e.catalog))
	for i, p := range e.catalog {
		predictions[i] = models.TaxonPrediction{
			Genus:       p.Genus,
			Species:     p.Species,
			Probability: round3(global * shares[i]),
		}
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].Probability > predictions[j].Probability
	})
	if len(predictions) > 5 {
		predictions = predictions[:5]
	}

	return models.PredictionDay{Date: date, Taxa: predictions}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
