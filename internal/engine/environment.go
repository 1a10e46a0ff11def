package engine

import (
	"math"

	"github.com/nuptial/flightcast/internal/models"
)

// Fixed empirical weights and bias of the environmental model. These are not
// learned parameters; changing them changes forecast behaviour.
const (
	envWeightTemp      = 1.0
	envWeightHumidity  = 0.8
	envWeightRain      = 1.0
	envWeightWind      = 0.9
	envWeightPressure  = 0.3
	envWeightSightings = 0.6
	envBias            = 3.5
)

const (
	rainRecencyCutoffHours = 72
	rainRecencyDecayHours  = 24
)

// FlightProbability combines day-level features into one taxon-agnostic
// probability that conditions support flight activity at all. Output is
// strictly within (0, 1).
func FlightProbability(f models.FeatureVector) float64 {
	score := envWeightTemp*tempFit(f.TempMax, 28, 6) +
		envWeightHumidity*humidityFit(f.HumidityMean, 0.12) +
		envWeightRain*rainRecencyFit(f.HoursSinceRain) +
		envWeightWind*windFit(f.WindMax) +
		envWeightPressure*pressureStabilityFit(f.PressureTrend) +
		envWeightSightings*sightingsFit(f.SightingsBoost)

	return sigmoid(score - envBias)
}

// tempFit is a Gaussian kernel over maximum temperature.
func tempFit(tmax, optimal, width float64) float64 {
	d := tmax - optimal
	return math.Exp(-(d * d) / (2 * width * width))
}

// humidityFit is a logistic response centred at 60% RH.
func humidityFit(rh, slope float64) float64 {
	return sigmoid(slope * (rh - 60))
}

// rainRecencyFit rewards rain within the last three days, decaying over 24h.
func rainRecencyFit(hoursSinceRain int) float64 {
	if hoursSinceRain >= rainRecencyCutoffHours {
		return 0
	}
	return math.Exp(-float64(hoursSinceRain)/rainRecencyDecayHours) * 0.9
}

// windFit applies a linear penalty above 8 wind units, floored at 0.
func windFit(windMax float64) float64 {
	excess := windMax - 8
	if excess < 0 {
		excess = 0
	}
	fit := 1 - excess/12
	if fit < 0 {
		return 0
	}
	return fit
}

// pressureStabilityFit penalises rapid pressure change in either direction.
func pressureStabilityFit(trend float64) float64 {
	penalty := math.Abs(trend) * 0.1
	if penalty > 0.5 {
		penalty = 0.5
	}
	return 1 - penalty
}

func sightingsFit(boost float64) float64 {
	fit := boost * 0.25
	if fit > 1 {
		return 1
	}
	return fit
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
