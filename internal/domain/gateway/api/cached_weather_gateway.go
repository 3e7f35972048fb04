package api

import (
	"context"
	"errors"
	"fmt"

	"weather-search/internal/domain/model/external"
	"weather-search/pkg/log"
	"weather-search/pkg/metrics"
	"weather-search/pkg/redis"
)

const ForecastCacheName = "forecast"

// ForecastCache is the subset of redis.Cache used to keep forecasts
type ForecastCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
}

type cachedWeatherGateway struct {
	delegate WeatherGateway
	cache    ForecastCache
}

// NewCachedWeatherGateway wraps delegate with a read-through forecast cache.
// Cache failures never fail the request.
func NewCachedWeatherGateway(delegate WeatherGateway, cache ForecastCache) WeatherGateway {
	return &cachedWeatherGateway{delegate: delegate, cache: cache}
}

func (c *cachedWeatherGateway) GetForecast(ctx context.Context, latitude, longitude float64, days int) (*external.ForecastResponse, error) {
	key := forecastCacheKey(latitude, longitude, days)

	var cached external.ForecastResponse
	err := c.cache.Get(ctx, key, &cached)
	if err == nil {
		metrics.ObserveCache(ForecastCacheName, true)
		return &cached, nil
	}
	metrics.ObserveCache(ForecastCacheName, false)
	if !errors.Is(err, redis.ErrCacheMiss) {
		log.Warnw("forecast cache read failed", "key", key, "error", err)
	}

	forecast, err := c.delegate.GetForecast(ctx, latitude, longitude, days)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, forecast); err != nil {
		log.Warnw("forecast cache write failed", "key", key, "error", err)
	}
	return forecast, nil
}

// forecastCacheKey rounds coordinates to 4 decimals (about 11 m)
func forecastCacheKey(latitude, longitude float64, days int) string {
	return fmt.Sprintf("%.4f:%.4f:%d", latitude, longitude, days)
}
