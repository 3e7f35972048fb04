package weather

import (
	"weather-search/internal/domain/model"
	"weather-search/internal/domain/model/external"
)

// FormatForecast reshapes a provider forecast for display. It accepts partial
// payloads: missing values become nil and missing weather codes describe as code 0.
func FormatForecast(raw *external.ForecastResponse) model.FormattedForecast {
	formatted := model.FormattedForecast{
		Current: model.CurrentWeather{
			Description: describe(nil),
		},
		DailyForecast: []model.DailyForecast{},
	}
	if raw == nil {
		return formatted
	}

	if current := raw.Current; current != nil {
		formatted.Current = model.CurrentWeather{
			Temperature: current.Temperature2m,
			Humidity:    current.RelativeHumidity2m,
			WindSpeed:   current.WindSpeed10m,
			WeatherCode: current.WeatherCode,
			Description: describe(current.WeatherCode),
		}
	}

	if daily := raw.Daily; daily != nil {
		formatted.DailyForecast = make([]model.DailyForecast, 0, len(daily.Time))
		for i, date := range daily.Time {
			code := at(daily.WeatherCode, i)
			formatted.DailyForecast = append(formatted.DailyForecast, model.DailyForecast{
				Date:        date,
				TempMax:     at(daily.Temperature2mMax, i),
				TempMin:     at(daily.Temperature2mMin, i),
				WeatherCode: code,
				Description: describe(code),
			})
		}
	}

	return formatted
}

// at returns values[i], or nil when the array is shorter than i
func at[T any](values []*T, i int) *T {
	if i < 0 || i >= len(values) {
		return nil
	}
	return values[i]
}

func describe(code *int) string {
	if code == nil {
		return model.DescribeWeatherCode(0)
	}
	return model.DescribeWeatherCode(*code)
}
