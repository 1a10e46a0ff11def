package engine

import (
	"math"
	"time"

	"github.com/nuptial/flightcast/internal/models"
)

const (
	earthRadiusKM = 6371

	// Decay scales for the sightings kernel: a sighting 30 km away or 3 days
	// old contributes 1/e of its confidence.
	spatialScaleKM    = 30.0
	temporalScaleDays = 3.0

	// boostCap bounds the summed kernel output.
	boostCap = 3.0
)

// SightingsBoost computes the recent-local-activity boost for a target point
// and date: confidence-weighted sum over all sightings with exponential decay
// in both distance and age, clamped to [0, boostCap]. Monotonically
// non-decreasing in confidence, decreasing in distance and age.
func SightingsBoost(lat, lon float64, date time.Time, sightings []models.Sighting) float64 {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	var sum float64
	for _, s := range sightings {
		dist := haversineKM(lat, lon, s.Latitude, s.Longitude)
		spatial := math.Exp(-dist / spatialScaleKM)

		ageDays := midnight.Sub(s.ObservedAt).Hours() / 24
		if ageDays < 0 {
			ageDays = 0
		}
		temporal := math.Exp(-ageDays / temporalScaleDays)

		sum += spatial * temporal * s.Confidence
	}

	if sum > boostCap {
		return boostCap
	}
	return sum
}

// haversineKM returns the great-circle distance between two points in km.
func haversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
