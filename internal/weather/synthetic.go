package weather

import (
	"math"
	"time"

	"github.com/nuptial/flightcast/internal/models"
)

// SyntheticSeries builds a deterministic hourly series used when the upstream
// weather API is unavailable. The shape is a plausible diurnal cycle with rain
// every other day; given the same start and length it is bit-identical across
// invocations.
func SyntheticSeries(start time.Time, hours int) []models.HourlyObservation {
	start = start.UTC().Truncate(time.Hour)
	series := make([]models.HourlyObservation, 0, hours)
	for i := 0; i < hours; i++ {
		precip := 0.0
		if i%48 == 1 {
			precip = 3
		}
		series = append(series, models.HourlyObservation{
			Time:        start.Add(time.Duration(i) * time.Hour),
			TempC:       26 + 6*math.Sin(float64(i)/24),
			HumidityPct: 55 + 15*math.Sin(float64(i)/36),
			PrecipMM:    precip,
			WindSpeed:   8 + 4*math.Cos(float64(i)/24),
			PressureHPa: 1013 + 2*math.Sin(float64(i)/48),
		})
	}
	return series
}
