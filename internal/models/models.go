package models

import "time"

// HourlyObservation is a single hour of weather data, either fetched from the
// upstream forecast API or synthesized locally when the fetch fails.
type HourlyObservation struct {
	Time        time.Time `json:"time"`
	TempC       float64   `json:"temp_c"`
	HumidityPct float64   `json:"humidity_pct"`
	PrecipMM    float64   `json:"precip_mm"`
	WindSpeed   float64   `json:"wind_speed"`
	PressureHPa float64   `json:"pressure_hpa"`
}

// DailyAggregate summarises the hourly observations of one UTC calendar date.
type DailyAggregate struct {
	Date         string  `json:"date"` // "2006-01-02"
	TempMax      float64 `json:"temp_max"`
	HumidityMean float64 `json:"humidity_mean"`
	PrecipSum    float64 `json:"precip_sum"`
	WindMax      float64 `json:"wind_max"`
	PressureMean float64 `json:"pressure_mean"`
}

// TrendScalars are request-level features derived from the tail of the hourly
// series. They reflect conditions at request time and are shared across all
// forecast days, not recomputed per day.
type TrendScalars struct {
	HoursSinceRain int     `json:"hours_since_rain"` // 999 when no rain found in window
	PressureTrend  float64 `json:"pressure_trend"`   // hPa per hour
}

// Sighting is a user-submitted field observation of flight activity.
// Sightings are append-only; they are never updated or deleted.
type Sighting struct {
	ID         int64     `json:"id"`
	ObservedAt time.Time `json:"observed_at"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Genus      string    `json:"genus,omitempty"`
	Species    string    `json:"species,omitempty"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

// FeatureVector holds the per-day inputs consumed by both scoring models.
type FeatureVector struct {
	TempMax        float64
	HumidityMean   float64
	HoursSinceRain int
	WindMax        float64
	PressureTrend  float64
	Month          time.Month
	SightingsBoost float64 // clamped to [0, 3]
}

// TaxonPrediction is one ranked entry in a day's forecast.
type TaxonPrediction struct {
	Genus       string  `json:"genus"`
	Species     string  `json:"species,omitempty"`
	Probability float64 `json:"probability"`
}

// PredictionDay is the ranked forecast for a single date: at most five taxa,
// ordered by descending probability.
type PredictionDay struct {
	Date string            `json:"date"`
	Taxa []TaxonPrediction `json:"taxa"`
}
