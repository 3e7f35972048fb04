package controller

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"weather-search/internal/application/middleware"
	"weather-search/internal/domain/model"
	"weather-search/internal/domain/usecase/autocomplete"
	"weather-search/internal/domain/usecase/weather"
	"weather-search/pkg/msg"
)

type WeatherController struct {
	api                 *echo.Group
	useCase             weather.UseCase
	autocompleteUseCase autocomplete.UseCase
	minQueryLength      int
}

func NewWeatherController(api *echo.Group, useCase weather.UseCase, autocompleteUseCase autocomplete.UseCase, minQueryLength int) *WeatherController {
	return &WeatherController{
		api:                 api,
		useCase:             useCase,
		autocompleteUseCase: autocompleteUseCase,
		minQueryLength:      minQueryLength,
	}
}

// InitWeatherRoutes initializes weather routes
func (controller *WeatherController) InitWeatherRoutes() {
	controller.api.GET("/weather", controller.SearchWeather)
	controller.api.GET("/weather/autocomplete", controller.Autocomplete)
	controller.api.GET("/weather/previous-cities", controller.GetPreviousCities)
	controller.api.DELETE("/weather/previous-cities", controller.ClearPreviousCities)
}

// SearchWeather godoc
// @Summary Get the weather of a city
// @Description Resolve a city by name and return its current conditions and daily forecast. The search is recorded in the session history.
// @Tags weather
// @Produce json
// @Param city query string true "City name"
// @Success 200 {object} model.WeatherResponse
// @Failure 400 {object} ErrorResponse "Empty or too long city name"
// @Failure 404 {object} ErrorResponse "City not found"
// @Failure 502 {object} ErrorResponse "Weather provider unavailable"
// @Router /weather [get]
func (controller *WeatherController) SearchWeather(c echo.Context) error {
	var dto model.CitySearchDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return respondError(c, err)
	}

	response, err := controller.useCase.SearchWeather(c.Request().Context(), dto.City, middleware.SessionKey(c))
	if err != nil {
		return respondError(c, err)
	}

	writePreviousCities(c, rememberCity(readPreviousCities(c), response.City))
	return c.JSON(http.StatusOK, response)
}

// Autocomplete godoc
// @Summary Suggest city names
// @Description Merge known cities and geocoding matches for a partial name. Shorter queries return no suggestions.
// @Tags weather
// @Produce json
// @Param q query string true "Partial city name"
// @Success 200 {object} model.AutocompleteResponse
// @Router /weather/autocomplete [get]
func (controller *WeatherController) Autocomplete(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if utf8.RuneCountInString(query) < controller.minQueryLength {
		return c.JSON(http.StatusOK, model.AutocompleteResponse{
			Status:      statusSuccess,
			Suggestions: []model.Suggestion{},
			Query:       query,
			Message:     msg.GetMessage("autocomplete.too-short", controller.minQueryLength),
		})
	}

	result := controller.autocompleteUseCase.Suggest(c.Request().Context(), query)
	return c.JSON(http.StatusOK, model.AutocompleteResponse{
		Status:      statusSuccess,
		Suggestions: result.Suggestions,
		Query:       result.Query,
		TotalFound:  len(result.Suggestions),
	})
}

// GetPreviousCities godoc
// @Summary List recently searched cities
// @Description Cities kept in the visitor cookie, most recent first
// @Tags weather
// @Produce json
// @Success 200 {object} model.PreviousCitiesResponse
// @Router /weather/previous-cities [get]
func (controller *WeatherController) GetPreviousCities(c echo.Context) error {
	return c.JSON(http.StatusOK, model.PreviousCitiesResponse{
		Status:         statusSuccess,
		PreviousCities: readPreviousCities(c),
	})
}

// ClearPreviousCities godoc
// @Summary Forget recently searched cities
// @Tags weather
// @Produce json
// @Success 200 {object} model.PreviousCitiesResponse
// @Router /weather/previous-cities [delete]
func (controller *WeatherController) ClearPreviousCities(c echo.Context) error {
	clearPreviousCities(c)
	return c.JSON(http.StatusOK, model.PreviousCitiesResponse{
		Status:         "cleared",
		PreviousCities: []string{},
	})
}
