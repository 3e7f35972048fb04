package configs

import (
	"weather-search/internal/domain/model"
	"weather-search/pkg/resource"
)

// LookupConfig reads the upstream lookup parameters, keeping the defaults for missing properties
func LookupConfig() model.LookupConfig {
	defaults := model.DefaultLookupConfig()
	return model.LookupConfig{
		Language:          resource.GetStringOrDefault("app.geocoding.language", defaults.Language),
		ResolveTimeout:    resource.GetDurationOrDefault("app.geocoding.resolve-timeout", defaults.ResolveTimeout),
		ForecastTimeout:   resource.GetDurationOrDefault("app.forecast.timeout", defaults.ForecastTimeout),
		SuggestTimeout:    resource.GetDurationOrDefault("app.autocomplete.timeout", defaults.SuggestTimeout),
		ForecastDays:      resource.GetIntOrDefault("app.forecast.days", defaults.ForecastDays),
		LocalSuggestLimit: resource.GetIntOrDefault("app.autocomplete.local-limit", defaults.LocalSuggestLimit),
		APISuggestLimit:   resource.GetIntOrDefault("app.autocomplete.api-limit", defaults.APISuggestLimit),
		MaxSuggestions:    resource.GetIntOrDefault("app.autocomplete.max-suggestions", defaults.MaxSuggestions),
		MinQueryLength:    resource.GetIntOrDefault("app.autocomplete.min-query-length", defaults.MinQueryLength),
		MaxCityNameLength: resource.GetIntOrDefault("app.geocoding.max-city-name-length", defaults.MaxCityNameLength),
	}
}
