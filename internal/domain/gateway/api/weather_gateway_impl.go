package api

import (
	"context"
	"strconv"
	"time"

	"weather-search/internal/domain/model/external"
	"weather-search/pkg/http"
	"weather-search/pkg/metrics"
)

const (
	currentFields = "temperature_2m,weather_code,wind_speed_10m,relative_humidity_2m"
	dailyFields   = "temperature_2m_max,temperature_2m_min,weather_code"
)

type weatherGatewayImpl struct {
	httpClient *http.Client
}

// NewWeatherGateway creates a WeatherGateway calling the Open-Meteo forecast API at baseUrl
func NewWeatherGateway(baseUrl string, clientOptions http.ClientOptions) WeatherGateway {
	return &weatherGatewayImpl{
		httpClient: http.NewHttpClient(baseUrl, clientOptions),
	}
}

func (w *weatherGatewayImpl) GetForecast(ctx context.Context, latitude, longitude float64, days int) (forecast *external.ForecastResponse, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(provider, "forecast", start, err) }()

	successResp, errResp, status, err := w.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath("/").
		WithQueryParams(map[string]string{
			"latitude":      strconv.FormatFloat(latitude, 'f', -1, 64),
			"longitude":     strconv.FormatFloat(longitude, 'f', -1, 64),
			"current":       currentFields,
			"daily":         dailyFields,
			"timezone":      "auto",
			"forecast_days": strconv.Itoa(days),
		}).
		WithSuccessResp(&external.ForecastResponse{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()
	if err != nil {
		return nil, toUpstreamError("forecast", status, errResp, err)
	}

	return successResp.(*external.ForecastResponse), nil
}
