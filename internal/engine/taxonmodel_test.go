package engine

import (
	"math"
	"testing"
	"time"

	"github.com/nuptial/flightcast/internal/models"
	"github.com/nuptial/flightcast/internal/taxa"
)

func TestRelativeShares_Distribution(t *testing.T) {
	vectors := []models.FeatureVector{
		baseFeatures(),
		{TempMax: -10, HumidityMean: 20, HoursSinceRain: 999, WindMax: 40, Month: time.December},
		{TempMax: 35, HumidityMean: 90, HoursSinceRain: 2, WindMax: 1, Month: time.June, SightingsBoost: 2},
	}

	catalog := taxa.Catalog()
	for i, f := range vectors {
		shares := RelativeShares(f, catalog)
		if len(shares) != len(catalog) {
			t.Fatalf("vector %d: len(shares) = %d, want %d", i, len(shares), len(catalog))
		}

		var sum float64
		for j, s := range shares {
			if s < 0 {
				t.Errorf("vector %d: share %d = %v, want >= 0", i, j, s)
			}
			sum += s
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("vector %d: sum = %v, want 1 within 1e-9", i, sum)
		}
	}
}

func TestRelativeShares_SeasonMatters(t *testing.T) {
	// Two profiles identical except for active months; the in-season one must
	// take the larger share.
	catalog := []taxa.Profile{
		{Genus: "A", ActiveMonths: []time.Month{time.July}, OptimalTempC: 28, TempTolerance: 5, HumiditySlope: 0.12, RainSensitivity: 1, WindPenalty: 0.3},
		{Genus: "B", ActiveMonths: []time.Month{time.January}, OptimalTempC: 28, TempTolerance: 5, HumiditySlope: 0.12, RainSensitivity: 1, WindPenalty: 0.3},
	}

	f := baseFeatures()
	f.Month = time.July
	shares := RelativeShares(f, catalog)
	if shares[0] <= shares[1] {
		t.Errorf("in-season share %v should exceed off-season share %v", shares[0], shares[1])
	}
}

func TestRelativeShares_TemperaturePreference(t *testing.T) {
	catalog := []taxa.Profile{
		{Genus: "Warm", ActiveMonths: []time.Month{time.July}, OptimalTempC: 30, TempTolerance: 4, HumiditySlope: 0.1, RainSensitivity: 1, WindPenalty: 0.3},
		{Genus: "Cool", ActiveMonths: []time.Month{time.July}, OptimalTempC: 16, TempTolerance: 4, HumiditySlope: 0.1, RainSensitivity: 1, WindPenalty: 0.3},
	}

	hot := baseFeatures()
	hot.TempMax = 30
	shares := RelativeShares(hot, catalog)
	if shares[0] <= shares[1] {
		t.Errorf("warm-adapted share %v should exceed cool-adapted %v on a 30C day", shares[0], shares[1])
	}

	cool := baseFeatures()
	cool.TempMax = 16
	shares = RelativeShares(cool, catalog)
	if shares[1] <= shares[0] {
		t.Errorf("cool-adapted share %v should exceed warm-adapted %v on a 16C day", shares[1], shares[0])
	}
}

func TestSoftmax_Stability(t *testing.T) {
	// Large magnitudes must not overflow to NaN/Inf.
	shares := softmax([]float64{1000, 1001, 999})
	var sum float64
	for _, s := range shares {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			t.Fatalf("softmax produced %v", s)
		}
		sum += s
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("sum = %v, want 1", sum)
	}
}
