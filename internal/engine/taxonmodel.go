package engine

import (
	"math"

	"github.com/nuptial/flightcast/internal/models"
	"github.com/nuptial/flightcast/internal/taxa"
)

// Per-term weights of the taxon relative model.
const (
	taxonWeightTemp     = 1.2
	taxonWeightHumidity = 0.9
	taxonWeightRain     = 1.0
	taxonWeightWind     = 0.9
	taxonWeightSeason   = 0.5

	offSeasonIndicator = 0.3
)

// RelativeShares scores every catalog profile against the feature vector and
// normalizes the raw scores via softmax. The result is order-aligned with the
// catalog, every element non-negative, and the vector sums to 1.
func RelativeShares(f models.FeatureVector, catalog []taxa.Profile) []float64 {
	raw := make([]float64, len(catalog))
	for i, p := range catalog {
		seasonal := offSeasonIndicator
		if p.ActiveIn(f.Month) {
			seasonal = 1.0
		}

		raw[i] = taxonWeightTemp*tempFit(f.TempMax, p.OptimalTempC, p.TempTolerance) +
			taxonWeightHumidity*humidityFit(f.HumidityMean, p.HumiditySlope) +
			taxonWeightRain*rainRecencyFit(f.HoursSinceRain)*p.RainSensitivity +
			taxonWeightWind*windFit(f.WindMax)*(1-p.WindPenalty) +
			taxonWeightSeason*seasonal
	}
	return softmax(raw)
}

// softmax normalizes scores into a distribution, subtracting the max for
// numeric stability.
func softmax(scores []float64) []float64 {
	if len(scores) == 0 {
		return nil
	}
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}

	out := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		out[i] = math.Exp(s - max)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
