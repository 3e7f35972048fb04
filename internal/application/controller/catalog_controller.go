package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"weather-search/internal/domain/model"
)

const apiVersion = "1.0.0"

type CatalogController struct {
	api         *echo.Group
	contextPath string
}

func NewCatalogController(api *echo.Group, contextPath string) *CatalogController {
	return &CatalogController{api: api, contextPath: contextPath}
}

// InitCatalogRoutes initializes the API root route
func (controller *CatalogController) InitCatalogRoutes() {
	controller.api.GET("", controller.GetCatalog)
	controller.api.GET("/", controller.GetCatalog)
}

// GetCatalog godoc
// @Summary API catalog
// @Description Lists the public endpoints of the service
// @Tags catalog
// @Produce json
// @Success 200 {object} model.CatalogResponse
// @Router / [get]
func (controller *CatalogController) GetCatalog(c echo.Context) error {
	return c.JSON(http.StatusOK, model.CatalogResponse{
		Status:      statusSuccess,
		Name:        "Weather Service API",
		Version:     apiVersion,
		Description: "City weather lookup with autocomplete and search history",
		DataSource:  "Open-Meteo API",
		Endpoints:   controller.endpoints(),
	})
}

func (controller *CatalogController) endpoints() map[string]model.EndpointInfo {
	url := func(path string) string {
		return controller.contextPath + path
	}
	return map[string]model.EndpointInfo{
		"weather": {
			URL: url("/weather"), Method: http.MethodGet,
			Description: "Current weather and daily forecast of a city",
			Parameters:  map[string]string{"city": "City name"},
		},
		"autocomplete": {
			URL: url("/weather/autocomplete"), Method: http.MethodGet,
			Description: "City name suggestions",
			Parameters:  map[string]string{"q": "At least 2 characters"},
		},
		"previous_cities": {
			URL: url("/weather/previous-cities"), Method: http.MethodGet,
			Description: "Recently searched cities of this visitor",
		},
		"history": {
			URL: url("/history"), Method: http.MethodGet,
			Description: "Search history of the current session",
			Parameters:  map[string]string{"page": "Page number, from 0", "size": "Page size, up to 100"},
		},
		"stats": {
			URL: url("/stats"), Method: http.MethodGet,
			Description: "Most searched cities",
			Parameters:  map[string]string{"limit": "Number of cities, up to 100"},
		},
		"health": {
			URL: url("/health"), Method: http.MethodGet,
			Description: "Service health",
		},
	}
}
