package weather

import (
	"reflect"
	"testing"
	"time"
)

func TestSyntheticSeries_Deterministic(t *testing.T) {
	start := time.Date(2026, 8, 10, 14, 30, 0, 0, time.UTC)

	a := SyntheticSeries(start, 72+7*24)
	b := SyntheticSeries(start, 72+7*24)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("synthetic series is not deterministic for identical inputs")
	}
}

func TestSyntheticSeries_Shape(t *testing.T) {
	start := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	series := SyntheticSeries(start, 96)

	if len(series) != 96 {
		t.Fatalf("len = %d, want 96", len(series))
	}

	for i, obs := range series {
		wantTime := start.Add(time.Duration(i) * time.Hour)
		if !obs.Time.Equal(wantTime) {
			t.Fatalf("hour %d: time = %v, want %v", i, obs.Time, wantTime)
		}

		wantPrecip := 0.0
		if i%48 == 1 {
			wantPrecip = 3
		}
		if obs.PrecipMM != wantPrecip {
			t.Errorf("hour %d: precip = %v, want %v", i, obs.PrecipMM, wantPrecip)
		}
	}

	// Hour 0 sits at the top of every cycle.
	first := series[0]
	if first.TempC != 26 || first.HumidityPct != 55 || first.WindSpeed != 12 || first.PressureHPa != 1013 {
		t.Errorf("hour 0 = %+v, want temp 26, humidity 55, wind 12, pressure 1013", first)
	}
}

func TestSyntheticSeries_TruncatesStartToHour(t *testing.T) {
	start := time.Date(2026, 8, 10, 14, 42, 13, 500, time.UTC)
	series := SyntheticSeries(start, 2)
	want := time.Date(2026, 8, 10, 14, 0, 0, 0, time.UTC)
	if !series[0].Time.Equal(want) {
		t.Errorf("first hour = %v, want %v", series[0].Time, want)
	}
}
