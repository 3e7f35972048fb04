package api

import (
	"context"
	"strconv"
	"time"

	"weather-search/internal/domain/model/external"
	"weather-search/pkg/http"
	"weather-search/pkg/metrics"
)

type geocodingGatewayImpl struct {
	httpClient *http.Client
}

// NewGeocodingGateway creates a GeocodingGateway calling the Open-Meteo geocoding API at baseUrl
func NewGeocodingGateway(baseUrl string, clientOptions http.ClientOptions) GeocodingGateway {
	return &geocodingGatewayImpl{
		httpClient: http.NewHttpClient(baseUrl, clientOptions),
	}
}

func (g *geocodingGatewayImpl) Search(ctx context.Context, name string, count int, language string) (results []external.GeocodingResult, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(provider, "geocoding", start, err) }()

	successResp, errResp, status, err := g.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath("/").
		WithQueryParams(map[string]string{
			"name":     name,
			"count":    strconv.Itoa(count),
			"language": language,
			"format":   "json",
		}).
		WithSuccessResp(&external.GeocodingResponse{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()
	if err != nil {
		return nil, toUpstreamError("geocoding", status, errResp, err)
	}

	response := successResp.(*external.GeocodingResponse)
	if response.Results == nil {
		return []external.GeocodingResult{}, nil
	}
	return response.Results, nil
}
