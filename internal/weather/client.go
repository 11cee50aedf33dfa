// Package weather fetches forecast data from the Open-Meteo API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const defaultBaseURL = "https://api.open-meteo.com"

// Client is a thin HTTP client for the Open-Meteo forecast endpoint.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a Client. An empty baseURL selects the public API.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

// Current holds the current-conditions block of a forecast.
type Current struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
	Time        string  `json:"time"`
}

// Hourly holds parallel per-hour series.
type Hourly struct {
	Time                     []string  `json:"time"`
	Temperature              []float64 `json:"temperature_2m"`
	PrecipitationProbability []int     `json:"precipitation_probability"`
}

// Daily holds parallel per-day series.
type Daily struct {
	Time             []string  `json:"time"`
	TemperatureMax   []float64 `json:"temperature_2m_max"`
	TemperatureMin   []float64 `json:"temperature_2m_min"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
}

// Forecast is the structured payload returned by Fetch.
type Forecast struct {
	Current Current `json:"current_weather"`
	Hourly  Hourly  `json:"hourly"`
	Daily   Daily   `json:"daily"`
}

// IsEmpty reports whether the forecast carries no usable data, the
// "unavailable" signal callers must handle without crashing.
func (f Forecast) IsEmpty() bool {
	return f.Current.Time == "" && len(f.Hourly.Time) == 0 && len(f.Daily.Time) == 0
}

// Fetch retrieves current conditions plus hourly and daily series for
// the given coordinates. forecastDays <= 0 defaults to 1.
func (c *Client) Fetch(ctx context.Context, lat, lon float64, forecastDays int) (Forecast, error) {
	if forecastDays <= 0 {
		forecastDays = 1
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	q.Set("current_weather", "true")
	q.Set("hourly", "temperature_2m,precipitation_probability")
	q.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum")
	q.Set("forecast_days", strconv.Itoa(forecastDays))
	q.Set("timezone", "auto")

	endpoint := c.baseURL + "/v1/forecast?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Forecast{}, fmt.Errorf("weather: build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Forecast{}, fmt.Errorf("weather: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Forecast{}, fmt.Errorf("weather: unexpected status %d", resp.StatusCode)
	}

	var forecast Forecast
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return Forecast{}, fmt.Errorf("weather: decode: %w", err)
	}
	return forecast, nil
}
