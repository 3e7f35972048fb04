package api

import (
	"context"

	"weather-search/internal/domain/model/external"
)

// WeatherGateway retrieves forecasts for a coordinate pair
type WeatherGateway interface {
	GetForecast(ctx context.Context, latitude, longitude float64, days int) (*external.ForecastResponse, error)
}
