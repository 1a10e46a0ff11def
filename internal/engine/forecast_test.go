package engine

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/nuptial/flightcast/internal/models"
	"github.com/nuptial/flightcast/internal/weather"
)

type failingWeather struct{}

func (failingWeather) FetchHourly(context.Context, float64, float64, int, int) ([]models.HourlyObservation, error) {
	return nil, errors.New("upstream unavailable")
}

type fixedWeather struct {
	series []models.HourlyObservation
}

func (f fixedWeather) FetchHourly(context.Context, float64, float64, int, int) ([]models.HourlyObservation, error) {
	return f.series, nil
}

type fixtureSightings []models.Sighting

func (f fixtureSightings) ListSightings() ([]models.Sighting, error) {
	return f, nil
}

func TestForecast_SyntheticFallback(t *testing.T) {
	eng := New(failingWeather{}, fixtureSightings(nil))

	result, err := eng.Forecast(context.Background(), 45.0, -122.0, 16)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if !result.Synthetic {
		t.Error("expected synthetic weather flag")
	}
	if result.Notice != nil {
		t.Errorf("unexpected clamp notice %+v for days=16", result.Notice)
	}
	if len(result.Days) != 16 {
		t.Fatalf("len(days) = %d, want 16", len(result.Days))
	}

	for _, day := range result.Days {
		if len(day.Taxa) != 5 {
			t.Fatalf("day %s: %d taxa, want 5", day.Date, len(day.Taxa))
		}
		for i := 1; i < len(day.Taxa); i++ {
			if day.Taxa[i].Probability > day.Taxa[i-1].Probability {
				t.Errorf("day %s: probabilities not non-increasing at %d", day.Date, i)
			}
		}
		for _, taxon := range day.Taxa {
			if taxon.Probability < 0 || taxon.Probability > 1 {
				t.Errorf("day %s: probability %v out of [0,1]", day.Date, taxon.Probability)
			}
		}
	}

	// Days ascend by date.
	for i := 1; i < len(result.Days); i++ {
		if result.Days[i].Date <= result.Days[i-1].Date {
			t.Errorf("dates not ascending: %s after %s", result.Days[i].Date, result.Days[i-1].Date)
		}
	}
}

func TestForecast_ClampsHorizon(t *testing.T) {
	eng := New(failingWeather{}, fixtureSightings(nil))

	result, err := eng.Forecast(context.Background(), 45.0, -122.0, 20)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if result.Notice == nil {
		t.Fatal("expected clamp notice for days=20")
	}
	if result.Notice.RequestedDays != 20 || result.Notice.AppliedDays != 16 {
		t.Errorf("notice = %+v, want requested 20 applied 16", result.Notice)
	}
	if len(result.Days) != 16 {
		t.Errorf("len(days) = %d, want 16", len(result.Days))
	}
}

func TestForecast_RaisesHorizonToOne(t *testing.T) {
	eng := New(failingWeather{}, fixtureSightings(nil))

	result, err := eng.Forecast(context.Background(), 45.0, -122.0, 0)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if result.Notice != nil {
		t.Errorf("unexpected notice %+v for days=0", result.Notice)
	}
	if len(result.Days) != 1 {
		t.Errorf("len(days) = %d, want 1", len(result.Days))
	}
}

func TestForecast_Deterministic(t *testing.T) {
	start := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	src := fixedWeather{series: weather.SyntheticSeries(start, LookbackHours+7*24)}
	sightings := fixtureSightings{
		{ObservedAt: start.Add(48 * time.Hour), Latitude: 45.01, Longitude: -122.02, Genus: "Lasius", Confidence: 0.9},
	}
	eng := New(src, sightings)

	a, err := eng.Forecast(context.Background(), 45.0, -122.0, 7)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	b, err := eng.Forecast(context.Background(), 45.0, -122.0, 7)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated invocations with identical inputs differ")
	}
}

func TestForecast_BoundedByGlobalProbability(t *testing.T) {
	start := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)
	series := weather.SyntheticSeries(start, LookbackHours+24)
	eng := New(fixedWeather{series: series}, fixtureSightings(nil))

	result, err := eng.Forecast(context.Background(), 45.0, -122.0, 1)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if len(result.Days) == 0 {
		t.Fatal("no days returned")
	}

	trends := weather.Trends(series)
	aggs := weather.DailyAggregates(series, 1)
	date, _ := time.Parse("2006-01-02", aggs[0].Date)
	global := FlightProbability(models.FeatureVector{
		TempMax:        aggs[0].TempMax,
		HumidityMean:   aggs[0].HumidityMean,
		HoursSinceRain: trends.HoursSinceRain,
		WindMax:        aggs[0].WindMax,
		PressureTrend:  trends.PressureTrend,
		Month:          date.Month(),
	})

	for _, taxon := range result.Days[0].Taxa {
		if taxon.Probability > global+0.0005 { // allow for 3-decimal rounding
			t.Errorf("taxon probability %v exceeds global probability %v", taxon.Probability, global)
		}
	}
}
