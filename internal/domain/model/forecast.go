package model

// CurrentWeather holds the current conditions. Fields the provider omitted are nil.
type CurrentWeather struct {
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	WindSpeed   *float64 `json:"wind_speed"`
	WeatherCode *int     `json:"weather_code"`
	Description string   `json:"description"`
}

// DailyForecast is a single day of the forecast
type DailyForecast struct {
	Date        string   `json:"date"`
	TempMax     *float64 `json:"temp_max"`
	TempMin     *float64 `json:"temp_min"`
	WeatherCode *int     `json:"weather_code"`
	Description string   `json:"description"`
}

// FormattedForecast is the display shape of a provider forecast
type FormattedForecast struct {
	Current       CurrentWeather  `json:"current"`
	DailyForecast []DailyForecast `json:"daily_forecast"`
}

// WeatherResponse is returned by the weather search endpoint
type WeatherResponse struct {
	Status      string            `json:"status"`
	City        string            `json:"city"`
	Country     string            `json:"country"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	WeatherData FormattedForecast `json:"weather_data"`
}
