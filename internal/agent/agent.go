// Package agent implements the assistant's intent handlers.
package agent

import (
	"context"

	"github.com/nexcai/nexcai/internal/weather"
)

// Agent handles one class of user query. Expected upstream failures
// (bad model output, unreachable weather service) are folded into the
// reply string; returned errors mean the agent itself could not run.
type Agent interface {
	Run(ctx context.Context, query string) (string, error)
}

// FactStore is the slice of the long-term memory store the general
// agent needs.
type FactStore interface {
	Add(ctx context.Context, text string) error
	Search(ctx context.Context, query string, k int) ([]string, error)
}

// Forecaster fetches weather data for a coordinate pair.
type Forecaster interface {
	Fetch(ctx context.Context, lat, lon float64, forecastDays int) (weather.Forecast, error)
}
