package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"weather-search/internal/application/middleware"
	"weather-search/internal/domain/entity"
	"weather-search/internal/domain/model"
	"weather-search/internal/domain/model/external"
)

const testSession = "4c1f3b0e-5a7d-4b8e-9c61-0f5d2a9e7b13"

type MockWeatherUseCase struct {
	mock.Mock
}

func (m *MockWeatherUseCase) ResolveCity(ctx context.Context, name string) (*entity.City, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.City), args.Error(1)
}

func (m *MockWeatherUseCase) ResolveCoordinates(ctx context.Context, name string) (float64, float64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(float64), args.Get(1).(float64), args.Error(2)
}

func (m *MockWeatherUseCase) FetchForecast(ctx context.Context, latitude, longitude float64) (*external.ForecastResponse, error) {
	args := m.Called(ctx, latitude, longitude)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*external.ForecastResponse), args.Error(1)
}

func (m *MockWeatherUseCase) SearchWeather(ctx context.Context, name string, sessionKey string) (*model.WeatherResponse, error) {
	args := m.Called(ctx, name, sessionKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WeatherResponse), args.Error(1)
}

type MockAutocompleteUseCase struct {
	mock.Mock
}

func (m *MockAutocompleteUseCase) Suggest(ctx context.Context, query string) model.SuggestResult {
	return m.Called(ctx, query).Get(0).(model.SuggestResult)
}

type MockHistoryUseCase struct {
	mock.Mock
}

func (m *MockHistoryUseCase) RecordSearch(ctx context.Context, record model.SearchRecordMessage) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockHistoryUseCase) SaveHistory(ctx context.Context, record model.SearchRecordMessage) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockHistoryUseCase) GetHistory(ctx context.Context, sessionKey string, page int, size int) (*model.Page[model.HistoryEntry], error) {
	args := m.Called(ctx, sessionKey, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page[model.HistoryEntry]), args.Error(1)
}

func (m *MockHistoryUseCase) ClearHistory(ctx context.Context, sessionKey string) (int64, error) {
	args := m.Called(ctx, sessionKey)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHistoryUseCase) DeleteSearch(ctx context.Context, sessionKey string, id string) error {
	return m.Called(ctx, sessionKey, id).Error(0)
}

func (m *MockHistoryUseCase) GetPopularCities(ctx context.Context, limit int) ([]model.PopularCity, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PopularCity), args.Error(1)
}

func (m *MockHistoryUseCase) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type fixture struct {
	echo         *echo.Echo
	weather      *MockWeatherUseCase
	autocomplete *MockAutocompleteUseCase
	history      *MockHistoryUseCase
}

func newFixture() *fixture {
	e := echo.New()
	e.Validator = NewRequestValidator()
	e.Use(middleware.Session())
	api := e.Group("/weather-search")

	f := &fixture{
		echo:         e,
		weather:      new(MockWeatherUseCase),
		autocomplete: new(MockAutocompleteUseCase),
		history:      new(MockHistoryUseCase),
	}
	NewWeatherController(api, f.weather, f.autocomplete, 2).InitWeatherRoutes()
	NewHistoryController(api, f.history).InitHistoryRoutes()
	NewCatalogController(api, "/weather-search").InitCatalogRoutes()
	return f
}

func (f *fixture) do(method, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: testSession})
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestSearchWeather(t *testing.T) {
	f := newFixture()
	f.weather.On("SearchWeather", mock.Anything, "Москва", testSession).Return(&model.WeatherResponse{
		Status: "success", City: "Москва", Country: "Россия", Latitude: 55.75, Longitude: 37.61,
	}, nil)

	rec := f.do(http.MethodGet, "/weather-search/weather?city="+url.QueryEscape("Москва"),
		&http.Cookie{Name: previousCitiesCookie, Value: url.PathEscape("Париж")})

	require.Equal(t, http.StatusOK, rec.Code)
	var body model.WeatherResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Москва", body.City)

	cookie := findCookie(rec, previousCitiesCookie)
	require.NotNil(t, cookie)
	assert.Contains(t, cookie.Value, url.PathEscape("Москва")+","+url.PathEscape("Париж"))
}

func TestSearchWeatherErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", &model.NotFoundError{Resource: "city", Key: "Atlantis"}, http.StatusNotFound},
		{"validation", &model.ValidationError{Field: "city", Reason: "must not be empty"}, http.StatusBadRequest},
		{"upstream", &model.UpstreamError{Provider: "open-meteo", Op: "forecast", Err: errors.New("timeout")}, http.StatusBadGateway},
		{"unexpected", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.weather.On("SearchWeather", mock.Anything, "Atlantis", testSession).Return(nil, tt.err)

			rec := f.do(http.MethodGet, "/weather-search/weather?city=Atlantis")

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"status":"error"`)
			assert.Nil(t, findCookie(rec, previousCitiesCookie))
		})
	}
}

func TestSearchWeatherMissingCity(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/weather-search/weather")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.weather.AssertNotCalled(t, "SearchWeather", mock.Anything, mock.Anything, mock.Anything)
}

func TestAutocompleteShortQuery(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/weather-search/weather/autocomplete?q=m")

	require.Equal(t, http.StatusOK, rec.Code)
	var body model.AutocompleteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Suggestions)
	assert.NotEmpty(t, body.Message)
	f.autocomplete.AssertNotCalled(t, "Suggest", mock.Anything, mock.Anything)
}

func TestAutocomplete(t *testing.T) {
	f := newFixture()
	f.autocomplete.On("Suggest", mock.Anything, "мос").Return(model.SuggestResult{
		Query:       "мос",
		Suggestions: []model.Suggestion{{Value: "Москва", Label: "Москва, Россия", Source: model.SuggestionSourceLocal}},
		Local:       model.PhaseOK,
		Remote:      model.PhaseFailed,
	})

	rec := f.do(http.MethodGet, "/weather-search/weather/autocomplete?q="+url.QueryEscape("мос"))

	require.Equal(t, http.StatusOK, rec.Code)
	var body model.AutocompleteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, 1, body.TotalFound)
	assert.Equal(t, "Москва", body.Suggestions[0].Value)
}

func TestPreviousCities(t *testing.T) {
	f := newFixture()
	value := strings.Join([]string{url.PathEscape("Нью-Йорк"), url.PathEscape("San José")}, ",")

	rec := f.do(http.MethodGet, "/weather-search/weather/previous-cities", &http.Cookie{Name: previousCitiesCookie, Value: value})

	require.Equal(t, http.StatusOK, rec.Code)
	var body model.PreviousCitiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"Нью-Йорк", "San José"}, body.PreviousCities)

	rec = f.do(http.MethodDelete, "/weather-search/weather/previous-cities")
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := findCookie(rec, previousCitiesCookie)
	require.NotNil(t, cookie)
	assert.Negative(t, cookie.MaxAge)
}

func TestRememberCity(t *testing.T) {
	cities := []string{"Париж", "москва", "Рим", "Берлин", "Осло"}

	updated := rememberCity(cities, "Москва")

	assert.Equal(t, []string{"Москва", "Париж", "Рим", "Берлин", "Осло"}, updated)
	assert.Equal(t, []string{"Лондон", "Париж", "москва", "Рим", "Берлин"}, rememberCity(cities, "Лондон"))
}

func TestGetHistory(t *testing.T) {
	f := newFixture()
	page := model.NewPage([]model.HistoryEntry{{ID: "r-1", City: "Москва", SearchDate: "2024-12-01 10:00:00", WeatherData: json.RawMessage(`{}`)}}, 1, 5, 6)
	f.history.On("GetHistory", mock.Anything, testSession, 1, 5).Return(page, nil)

	rec := f.do(http.MethodGet, "/weather-search/history?page=1&size=5")

	require.Equal(t, http.StatusOK, rec.Code)
	var body model.HistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(6), body.TotalCount)
	assert.Equal(t, 2, body.TotalPages)
	assert.Equal(t, 1, body.Page)
	assert.Len(t, body.History, 1)
}

func TestGetHistoryInvalidPaging(t *testing.T) {
	f := newFixture()

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/weather-search/history?size=500").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/weather-search/history?page=abc").Code)
	f.history.AssertNotCalled(t, "GetHistory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteSearch(t *testing.T) {
	f := newFixture()
	existing := "9b2f6c1e-3d4a-4f5b-8c7d-1e2f3a4b5c6d"
	missing := "0f1e2d3c-4b5a-4978-8695-a4b3c2d1e0f9"
	f.history.On("DeleteSearch", mock.Anything, testSession, existing).Return(nil)
	f.history.On("DeleteSearch", mock.Anything, testSession, missing).Return(&model.NotFoundError{Resource: "search", Key: missing})

	assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, "/weather-search/history/"+existing).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, "/weather-search/history/"+missing).Code)
}

func TestClearHistory(t *testing.T) {
	f := newFixture()
	f.history.On("ClearHistory", mock.Anything, testSession).Return(int64(3), nil)

	rec := f.do(http.MethodDelete, "/weather-search/history")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","deleted":3}`, rec.Body.String())
}

func TestGetStats(t *testing.T) {
	f := newFixture()
	f.history.On("GetPopularCities", mock.Anything, defaultStatsLimit).Return([]model.PopularCity{
		{City: "Москва", Country: "Россия", SearchCount: 15},
		{City: "Париж", Country: "Франция", SearchCount: 4},
	}, nil)

	rec := f.do(http.MethodGet, "/weather-search/stats")

	require.Equal(t, http.StatusOK, rec.Code)
	var body model.StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.TotalCount)
	assert.Equal(t, int64(15), body.PopularCities[0].SearchCount)
}

func TestGetCatalog(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/weather-search")

	require.Equal(t, http.StatusOK, rec.Code)
	var body model.CatalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "1.0.0", body.Version)
	assert.Equal(t, "Open-Meteo API", body.DataSource)
	assert.Equal(t, "/weather-search/weather", body.Endpoints["weather"].URL)
}
