package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/nexcai/nexcai/internal/adapter"
)

const (
	replyNoCoordinates = "I couldn't extract a valid city and coordinates."
	replyNoWeatherData = "Sorry, I couldn't retrieve the weather data"
)

const extractPrompt = `From the following user question, extract:
1. The city name.
2. Its approximate latitude and longitude (decimal degrees).

Respond ONLY in this format:
City: <city>
Lat: <latitude>
Lon: <longitude>

Question: %q`

const summarizePrompt = `You are NEXCAI, an intelligent assistant.

The user asked: %q
The weather data for %s is below (JSON):
%s

Summarize this information naturally in English just like a weather
forecast reporter would while responding to the question within the
given data. Energetic and pleasant.`

// Weather answers forecast questions by extracting coordinates with
// the LLM, fetching Open-Meteo data, and summarising it.
type Weather struct {
	llm          adapter.Completer
	forecaster   Forecaster
	forecastDays int
}

// NewWeather creates a Weather agent.
func NewWeather(llm adapter.Completer, forecaster Forecaster, forecastDays int) *Weather {
	return &Weather{llm: llm, forecaster: forecaster, forecastDays: forecastDays}
}

func (w *Weather) Run(ctx context.Context, query string) (string, error) {
	city, lat, lon, ok := w.extractCityAndCoords(ctx, query)
	if !ok {
		return replyNoCoordinates, nil
	}

	forecast, err := w.forecaster.Fetch(ctx, lat, lon, w.forecastDays)
	if err != nil || forecast.IsEmpty() {
		return replyNoWeatherData, nil
	}

	payload, err := json.Marshal(forecast)
	if err != nil {
		return "", fmt.Errorf("agent: encode forecast: %w", err)
	}

	reply, err := adapter.Chat(ctx, w.llm, fmt.Sprintf(summarizePrompt, query, city, payload))
	if err != nil {
		return "", err
	}
	return reply, nil
}

// extractCityAndCoords parses the City:/Lat:/Lon: lines the extraction
// prompt asks for. Any missing field, unparseable number, or failed
// completion reports !ok. Latitude or longitude of exactly 0 is valid.
func (w *Weather) extractCityAndCoords(ctx context.Context, query string) (city string, lat, lon float64, ok bool) {
	reply, err := adapter.Chat(ctx, w.llm, fmt.Sprintf(extractPrompt, query))
	if err != nil {
		return "", 0, 0, false
	}

	var haveLat, haveLon bool
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "city:"):
			city = strings.TrimSpace(line[len("city:"):])
		case strings.HasPrefix(lower, "lat:"):
			if v, err := strconv.ParseFloat(strings.TrimSpace(line[len("lat:"):]), 64); err == nil {
				lat, haveLat = v, true
			}
		case strings.HasPrefix(lower, "lon:"):
			if v, err := strconv.ParseFloat(strings.TrimSpace(line[len("lon:"):]), 64); err == nil {
				lon, haveLon = v, true
			}
		}
	}

	if city == "" || !haveLat || !haveLon {
		return "", 0, 0, false
	}
	return city, lat, lon, true
}
