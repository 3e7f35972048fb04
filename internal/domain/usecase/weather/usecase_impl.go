package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"weather-search/internal/domain/entity"
	"weather-search/internal/domain/gateway/api"
	"weather-search/internal/domain/gateway/db"
	"weather-search/internal/domain/model"
	"weather-search/internal/domain/model/external"
	"weather-search/internal/domain/usecase/history"
	"weather-search/pkg/log"
	"weather-search/pkg/msg"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var errMissingCoordinates = errors.New("geocoding result without coordinates")

type weatherUseCase struct {
	config           model.LookupConfig
	validate         *validator.Validate
	cityGateway      db.CityGateway
	geocodingGateway api.GeocodingGateway
	weatherGateway   api.WeatherGateway
	historyUseCase   history.UseCase
}

func NewWeatherUseCase(config model.LookupConfig, cityGateway db.CityGateway, geocodingGateway api.GeocodingGateway, weatherGateway api.WeatherGateway, historyUseCase history.UseCase) UseCase {
	return &weatherUseCase{
		config:           config,
		validate:         validator.New(),
		cityGateway:      cityGateway,
		geocodingGateway: geocodingGateway,
		weatherGateway:   weatherGateway,
		historyUseCase:   historyUseCase,
	}
}

// ResolveCity consults the directory first so known cities cost no network call
func (uc *weatherUseCase) ResolveCity(ctx context.Context, name string) (*entity.City, error) {
	name, err := uc.validateCityName(name)
	if err != nil {
		return nil, err
	}

	stored, err := uc.cityGateway.FindByNameIgnoreCase(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find city %s: %w", name, err)
	}
	if stored != nil {
		return stored, nil
	}

	resolveCtx, cancel := context.WithTimeout(ctx, uc.config.ResolveTimeout)
	defer cancel()

	results, err := uc.geocodingGateway.Search(resolveCtx, name, 1, uc.config.Language)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, &model.NotFoundError{Resource: "city", Key: name}
	}

	first := results[0]
	if first.Latitude == nil || first.Longitude == nil {
		return nil, &model.UpstreamError{Provider: "open-meteo", Op: "geocoding", Err: errMissingCoordinates}
	}

	canonical := strings.TrimSpace(first.Name)
	if canonical == "" {
		canonical = name
	}

	city, err := uc.cityGateway.GetOrCreate(ctx, entity.City{
		Name:      canonical,
		Country:   first.Country,
		Latitude:  *first.Latitude,
		Longitude: *first.Longitude,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store city %s: %w", canonical, err)
	}

	log.Info(msg.GetMessage("weather.city-resolved", name, city.Name, city.Latitude, city.Longitude))
	return city, nil
}

func (uc *weatherUseCase) ResolveCoordinates(ctx context.Context, name string) (float64, float64, error) {
	city, err := uc.ResolveCity(ctx, name)
	if err != nil {
		return 0, 0, err
	}
	return city.Latitude, city.Longitude, nil
}

func (uc *weatherUseCase) FetchForecast(ctx context.Context, latitude, longitude float64) (*external.ForecastResponse, error) {
	forecastCtx, cancel := context.WithTimeout(ctx, uc.config.ForecastTimeout)
	defer cancel()

	return uc.weatherGateway.GetForecast(forecastCtx, latitude, longitude, uc.config.ForecastDays)
}

// SearchWeather never fails because of history recording
func (uc *weatherUseCase) SearchWeather(ctx context.Context, name string, sessionKey string) (*model.WeatherResponse, error) {
	city, err := uc.ResolveCity(ctx, name)
	if err != nil {
		return nil, err
	}

	raw, err := uc.FetchForecast(ctx, city.Latitude, city.Longitude)
	if err != nil {
		return nil, err
	}
	formatted := FormatForecast(raw)

	if sessionKey != "" && uc.historyUseCase != nil {
		record := model.SearchRecordMessage{
			SessionKey:  sessionKey,
			CityName:    city.Name,
			Country:     city.Country,
			Latitude:    city.Latitude,
			Longitude:   city.Longitude,
			WeatherData: formatted,
			SearchedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		if err := uc.historyUseCase.RecordSearch(ctx, record); err != nil {
			log.Error(msg.GetMessage("history.record-fail", city.Name), zap.String("session", sessionKey), zap.Error(err))
		}
	}

	return &model.WeatherResponse{
		Status:      "success",
		City:        city.Name,
		Country:     city.Country,
		Latitude:    city.Latitude,
		Longitude:   city.Longitude,
		WeatherData: formatted,
	}, nil
}

// validateCityName trims name and rejects empty or overlong values
func (uc *weatherUseCase) validateCityName(name string) (string, error) {
	name = strings.TrimSpace(name)
	rule := fmt.Sprintf("required,max=%d", uc.config.MaxCityNameLength)
	if err := uc.validate.Var(name, rule); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 && fieldErrors[0].Tag() == "max" {
			return "", &model.ValidationError{Field: "city", Reason: fmt.Sprintf("must be at most %d characters", uc.config.MaxCityNameLength)}
		}
		return "", &model.ValidationError{Field: "city", Reason: "must not be empty"}
	}
	return name, nil
}
