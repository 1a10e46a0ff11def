package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/nuptial/flightcast/internal/httputil"
	"github.com/nuptial/flightcast/internal/metrics"
	"github.com/nuptial/flightcast/internal/models"
)

const defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// Client fetches hourly weather series from the Open-Meteo forecast API.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		client:  httputil.NewClient(),
	}
}

// NewClientWithBaseURL is used by tests to point the client at a local server.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  httputil.NewClient(),
	}
}

type hourlyResponse struct {
	Hourly struct {
		Time            []string  `json:"time"`
		Temperature     []float64 `json:"temperature_2m"`
		Humidity        []float64 `json:"relative_humidity_2m"`
		Precipitation   []float64 `json:"precipitation"`
		WindSpeed       []float64 `json:"wind_speed_10m"`
		SurfacePressure []float64 `json:"surface_pressure"`
	} `json:"hourly"`
}

// FetchHourly returns an hourly observation series spanning pastHours of
// lookback plus forecastHours of horizon. Retries transient failures with
// exponential backoff; malformed payloads and client errors are permanent.
func (c *Client) FetchHourly(ctx context.Context, lat, lon float64, pastHours, forecastHours int) ([]models.HourlyObservation, error) {
	url := fmt.Sprintf(
		"%s?latitude=%.4f&longitude=%.4f&hourly=temperature_2m,relative_humidity_2m,precipitation,wind_speed_10m,surface_pressure&past_hours=%d&forecast_hours=%d&timezone=UTC",
		c.baseURL, lat, lon, pastHours, forecastHours,
	)

	start := time.Now()
	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("build request: %w", err))
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch hourly: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("fetch hourly: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("fetch hourly: status %d: %s", resp.StatusCode, string(b)))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("read body: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 20 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		metrics.WeatherAPICalls.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.WeatherAPICalls.WithLabelValues("ok").Inc()
	metrics.WeatherAPILatency.Observe(time.Since(start).Seconds())

	var data hourlyResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	h := data.Hourly
	n := len(h.Time)
	if n == 0 {
		return nil, fmt.Errorf("empty hourly series")
	}
	if len(h.Temperature) != n || len(h.Humidity) != n || len(h.Precipitation) != n ||
		len(h.WindSpeed) != n || len(h.SurfacePressure) != n {
		return nil, fmt.Errorf("mismatched hourly array lengths")
	}

	series := make([]models.HourlyObservation, 0, n)
	for i := 0; i < n; i++ {
		ts, err := time.Parse("2006-01-02T15:04", h.Time[i])
		if err != nil {
			return nil, fmt.Errorf("parse hour %q: %w", h.Time[i], err)
		}
		series = append(series, models.HourlyObservation{
			Time:        ts.UTC(),
			TempC:       h.Temperature[i],
			HumidityPct: h.Humidity[i],
			PrecipMM:    h.Precipitation[i],
			WindSpeed:   h.WindSpeed[i],
			PressureHPa: h.SurfacePressure[i],
		})
	}
	return series, nil
}
