package weather

import (
	"context"

	"weather-search/internal/domain/entity"
	"weather-search/internal/domain/model"
	"weather-search/internal/domain/model/external"
)

type UseCase interface {
	// ResolveCity returns the directory entry for name, geocoding and storing it on first lookup
	ResolveCity(ctx context.Context, name string) (*entity.City, error)

	// ResolveCoordinates returns the latitude and longitude of the named city
	ResolveCoordinates(ctx context.Context, name string) (float64, float64, error)

	// FetchForecast returns the provider forecast for a coordinate pair, unmodified
	FetchForecast(ctx context.Context, latitude, longitude float64) (*external.ForecastResponse, error)

	// SearchWeather resolves name, fetches and formats its forecast and records the search for sessionKey
	SearchWeather(ctx context.Context, name string, sessionKey string) (*model.WeatherResponse, error)
}
