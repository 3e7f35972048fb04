package api

import (
	"context"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"weather-search/internal/domain/model"
	"weather-search/pkg/http"
	"weather-search/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocodingSearch(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "Москва", r.URL.Query().Get("name"))
		assert.Equal(t, "1", r.URL.Query().Get("count"))
		assert.Equal(t, "ru", r.URL.Query().Get("language"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":524901,"name":"Москва","latitude":55.75222,"longitude":37.61556,"country":"Россия","admin1":"Москва"}]}`))
	}))
	defer server.Close()

	gateway := NewGeocodingGateway(server.URL, http.ClientOptions{})
	results, err := gateway.Search(context.Background(), "Москва", 1, "ru")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Москва", results[0].Name)
	assert.Equal(t, "Россия", results[0].Country)
	assert.InDelta(t, 55.75222, *results[0].Latitude, 1e-9)
}

func TestGeocodingSearchNoResults(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"generationtime_ms":0.5}`))
	}))
	defer server.Close()

	results, err := NewGeocodingGateway(server.URL, http.ClientOptions{}).Search(context.Background(), "Atlantis", 1, "ru")

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NotNil(t, results)
}

func TestGeocodingSearchUpstreamError(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":true,"reason":"Parameter count must be between 1 and 100"}`))
	}))
	defer server.Close()

	_, err := NewGeocodingGateway(server.URL, http.ClientOptions{}).Search(context.Background(), "x", 0, "ru")

	require.ErrorIs(t, err, model.ErrUpstream)
	var upstream *model.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, nethttp.StatusBadRequest, upstream.StatusCode)
	assert.Equal(t, "geocoding", upstream.Op)
	assert.Contains(t, upstream.Error(), "Parameter count")
}

func TestGeocodingSearchTransportError(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(nethttp.ResponseWriter, *nethttp.Request) {}))
	server.Close()

	_, err := NewGeocodingGateway(server.URL, http.ClientOptions{}).Search(context.Background(), "Paris", 1, "ru")

	assert.ErrorIs(t, err, model.ErrUpstream)
}

func TestGetForecast(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		query := r.URL.Query()
		assert.Equal(t, "55.75", query.Get("latitude"))
		assert.Equal(t, "37.62", query.Get("longitude"))
		assert.Equal(t, currentFields, query.Get("current"))
		assert.Equal(t, dailyFields, query.Get("daily"))
		assert.Equal(t, "auto", query.Get("timezone"))
		assert.Equal(t, "7", query.Get("forecast_days"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current":{"temperature_2m":15.2,"relative_humidity_2m":65,"wind_speed_10m":3.5,"weather_code":2},
			"daily":{"time":["2024-01-01","2024-01-02"],"temperature_2m_max":[16.0,null],"temperature_2m_min":[9.1],"weather_code":[2,61]}}`))
	}))
	defer server.Close()

	forecast, err := NewWeatherGateway(server.URL, http.ClientOptions{}).GetForecast(context.Background(), 55.75, 37.62, 7)

	require.NoError(t, err)
	require.NotNil(t, forecast.Current)
	assert.Equal(t, 15.2, *forecast.Current.Temperature2m)
	assert.Equal(t, 2, *forecast.Current.WeatherCode)
	require.NotNil(t, forecast.Daily)
	assert.Len(t, forecast.Daily.Time, 2)
	assert.Nil(t, forecast.Daily.Temperature2mMax[1])
	assert.Len(t, forecast.Daily.Temperature2mMin, 1)
}

func TestGetForecastServerError(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewWeatherGateway(server.URL, http.ClientOptions{}).GetForecast(context.Background(), 1, 2, 7)

	var upstream *model.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, nethttp.StatusServiceUnavailable, upstream.StatusCode)
}

func TestCachedWeatherGateway(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current":{"temperature_2m":1.5,"weather_code":0},"daily":{"time":["2024-01-01"],"temperature_2m_max":[2],"temperature_2m_min":[1],"weather_code":[0]}}`))
	}))
	defer server.Close()

	redisServer := miniredis.RunT(t)
	port, err := strconv.Atoi(redisServer.Port())
	require.NoError(t, err)
	config := redis.NewRedisConfig().WithCacheTTL(ForecastCacheName, 5*time.Minute)
	config.Host = redisServer.Host()
	config.Port = port
	client, err := redis.NewClient(config)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	cache := redis.NewCache(client, redis.NewCacheOptions().WithCacheName(ForecastCacheName))
	gateway := NewCachedWeatherGateway(NewWeatherGateway(server.URL, http.ClientOptions{}), cache)

	first, err := gateway.GetForecast(context.Background(), 55.75222, 37.61556, 7)
	require.NoError(t, err)
	second, err := gateway.GetForecast(context.Background(), 55.75222, 37.61556, 7)
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, *first.Current.Temperature2m, *second.Current.Temperature2m)
	assert.True(t, redisServer.Exists("forecast::55.7522:37.6156:7"))
}

func TestCachedWeatherGatewayIgnoresCacheOutage(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current":{"temperature_2m":1.5}}`))
	}))
	defer server.Close()

	redisServer := miniredis.RunT(t)
	port, err := strconv.Atoi(redisServer.Port())
	require.NoError(t, err)
	config := redis.NewRedisConfig()
	config.Host = redisServer.Host()
	config.Port = port
	config.MaxRetries = 0
	client, err := redis.NewClient(config)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()
	redisServer.Close()

	gateway := NewCachedWeatherGateway(NewWeatherGateway(server.URL, http.ClientOptions{}), redis.NewCache(client, nil))
	forecast, err := gateway.GetForecast(context.Background(), 1, 2, 7)

	require.NoError(t, err)
	assert.Equal(t, 1.5, *forecast.Current.Temperature2m)
}
