package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"weather-search/internal/application/middleware"
	"weather-search/internal/domain/model"
	"weather-search/internal/domain/usecase/history"
	"weather-search/pkg/util/numberutils"
)

const defaultStatsLimit = 20

type HistoryController struct {
	api     *echo.Group
	useCase history.UseCase
}

func NewHistoryController(api *echo.Group, useCase history.UseCase) *HistoryController {
	return &HistoryController{api: api, useCase: useCase}
}

// InitHistoryRoutes initializes search history routes
func (controller *HistoryController) InitHistoryRoutes() {
	controller.api.GET("/history", controller.GetHistory)
	controller.api.DELETE("/history", controller.ClearHistory)
	controller.api.DELETE("/history/:id", controller.DeleteSearch)
	controller.api.GET("/stats", controller.GetStats)
}

// GetHistory godoc
// @Summary Get the session search history
// @Description Searches made with the current session cookie, newest first
// @Tags history
// @Produce json
// @Param page query int false "Page number" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} model.HistoryResponse
// @Failure 400 {object} ErrorResponse "Invalid paging parameters"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /history [get]
func (controller *HistoryController) GetHistory(c echo.Context) error {
	dto := model.HistoryQueryDTO{Page: 0, Size: 10}
	if err := bindAndValidate(c, &dto); err != nil {
		return respondError(c, err)
	}

	page, err := controller.useCase.GetHistory(c.Request().Context(), middleware.SessionKey(c), dto.Page, dto.Size)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, model.HistoryResponse{
		Status:     statusSuccess,
		History:    page.Content,
		TotalCount: page.TotalElements,
		Page:       page.Number,
		Size:       page.Size,
		TotalPages: page.TotalPages,
	})
}

// ClearHistory godoc
// @Summary Clear the session search history
// @Tags history
// @Produce json
// @Success 200 {object} map[string]any "Number of deleted searches"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /history [delete]
func (controller *HistoryController) ClearHistory(c echo.Context) error {
	deleted, err := controller.useCase.ClearHistory(c.Request().Context(), middleware.SessionKey(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"status": statusSuccess, "deleted": deleted})
}

// DeleteSearch godoc
// @Summary Delete one search of the session history
// @Tags history
// @Param id path string true "Search id"
// @Success 204 "Search deleted"
// @Failure 404 {object} ErrorResponse "Search not found in this session"
// @Router /history/{id} [delete]
func (controller *HistoryController) DeleteSearch(c echo.Context) error {
	if err := controller.useCase.DeleteSearch(c.Request().Context(), middleware.SessionKey(c), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetStats godoc
// @Summary Most searched cities
// @Description Cities grouped across every session, most searched first
// @Tags history
// @Produce json
// @Param limit query int false "Number of cities" default(20)
// @Success 200 {object} model.StatsResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /stats [get]
func (controller *HistoryController) GetStats(c echo.Context) error {
	limit := numberutils.ToIntWithDefault(c.QueryParam("limit"), defaultStatsLimit)

	popular, err := controller.useCase.GetPopularCities(c.Request().Context(), limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, model.StatsResponse{
		Status:        statusSuccess,
		PopularCities: popular,
		TotalCount:    len(popular),
	})
}
