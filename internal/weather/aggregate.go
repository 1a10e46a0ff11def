package weather

import (
	"sort"

	"github.com/nuptial/flightcast/internal/models"
)

const (
	// rainThresholdMM is the hourly precipitation above which an hour counts
	// as rain for the recency scan.
	rainThresholdMM = 0.5

	// NoRainSentinel is returned by HoursSinceLastRain when no hour in the
	// window exceeds the rain threshold.
	NoRainSentinel = 999

	// pressureTrendWindow is the number of trailing observations used for the
	// pressure slope fit.
	pressureTrendWindow = 24
)

// HoursSinceLastRain scans the series backward from its most recent element
// and returns the number of whole hours since the last hour with
// precipitation above the rain threshold, or NoRainSentinel when none exists.
func HoursSinceLastRain(series []models.HourlyObservation) int {
	if len(series) == 0 {
		return NoRainSentinel
	}
	latest := series[len(series)-1].Time
	for i := len(series) - 1; i >= 0; i-- {
		if series[i].PrecipMM > rainThresholdMM {
			return int(latest.Sub(series[i].Time).Hours())
		}
	}
	return NoRainSentinel
}

// PressureTrend fits an ordinary least-squares slope of pressure against a
// 0-based index over the last 24 observations (or fewer if the series is
// shorter). The result is in hPa per hour. Returns 0 for fewer than 2 points.
func PressureTrend(series []models.HourlyObservation) float64 {
	window := series
	if len(window) > pressureTrendWindow {
		window = window[len(window)-pressureTrendWindow:]
	}
	n := len(window)
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, obs := range window {
		x := float64(i)
		y := obs.PressureHPa
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}

// Trends computes the request-level scalar features in one pass.
func Trends(series []models.HourlyObservation) models.TrendScalars {
	return models.TrendScalars{
		HoursSinceRain: HoursSinceLastRain(series),
		PressureTrend:  PressureTrend(series),
	}
}

// DailyAggregates groups the series by UTC calendar date and returns per-day
// aggregates for the first `days` distinct dates, ascending. A result shorter
// than requested is valid: dates beyond the grouped range are omitted.
func DailyAggregates(series []models.HourlyObservation, days int) []models.DailyAggregate {
	byDate := make(map[string][]models.HourlyObservation)
	for _, obs := range series {
		date := obs.Time.UTC().Format("2006-01-02")
		byDate[date] = append(byDate[date], obs)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	if len(dates) > days {
		dates = dates[:days]
	}

	aggregates := make([]models.DailyAggregate, 0, len(dates))
	for _, date := range dates {
		obs := byDate[date]
		agg := models.DailyAggregate{
			Date:    date,
			TempMax: obs[0].TempC,
			WindMax: obs[0].WindSpeed,
		}
		var humiditySum, pressureSum float64
		for _, o := range obs {
			if o.TempC > agg.TempMax {
				agg.TempMax = o.TempC
			}
			if o.WindSpeed > agg.WindMax {
				agg.WindMax = o.WindSpeed
			}
			agg.PrecipSum += o.PrecipMM
			humiditySum += o.HumidityPct
			pressureSum += o.PressureHPa
		}
		agg.HumidityMean = humiditySum / float64(len(obs))
		agg.PressureMean = pressureSum / float64(len(obs))
		aggregates = append(aggregates, agg)
	}
	return aggregates
}
