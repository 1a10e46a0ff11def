package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ForecastRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flightcast_forecast_requests_total",
			Help: "Total forecast requests by outcome",
		},
		[]string{"status"},
	)

	WeatherAPICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flightcast_weather_api_calls_total",
			Help: "Total upstream weather API calls",
		},
		[]string{"status"},
	)

	WeatherAPILatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flightcast_weather_api_latency_seconds",
			Help:    "Upstream weather API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	WeatherFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flightcast_weather_fallbacks_total",
			Help: "Forecasts served from the synthetic weather series",
		},
	)

	SightingsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flightcast_sightings_submitted_total",
			Help: "Total sightings accepted",
		},
	)
)
