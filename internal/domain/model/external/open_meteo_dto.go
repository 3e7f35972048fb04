package external

// GeocodingResponse is the Open-Meteo geocoding search payload.
// Results is absent when nothing matched.
type GeocodingResponse struct {
	Results          []GeocodingResult `json:"results"`
	GenerationTimeMs float64           `json:"generationtime_ms"`
}

type GeocodingResult struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Elevation   *float64 `json:"elevation"`
	CountryCode string   `json:"country_code"`
	Country     string   `json:"country"`
	Admin1      string   `json:"admin1"`
	Timezone    string   `json:"timezone"`
	Population  *int64   `json:"population"`
}

// ForecastResponse is the Open-Meteo forecast payload
type ForecastResponse struct {
	Latitude     float64        `json:"latitude"`
	Longitude    float64        `json:"longitude"`
	Timezone     string         `json:"timezone"`
	UTCOffset    int            `json:"utc_offset_seconds"`
	Current      *CurrentBlock  `json:"current,omitempty"`
	CurrentUnits map[string]any `json:"current_units,omitempty"`
	Daily        *DailyBlock    `json:"daily,omitempty"`
	DailyUnits   map[string]any `json:"daily_units,omitempty"`
}

type CurrentBlock struct {
	Time               string   `json:"time"`
	Temperature2m      *float64 `json:"temperature_2m"`
	RelativeHumidity2m *float64 `json:"relative_humidity_2m"`
	WindSpeed10m       *float64 `json:"wind_speed_10m"`
	WeatherCode        *int     `json:"weather_code"`
}

// DailyBlock holds parallel arrays indexed by Time. Arrays may be shorter than Time
// and may contain nulls.
type DailyBlock struct {
	Time             []string   `json:"time"`
	Temperature2mMax []*float64 `json:"temperature_2m_max"`
	Temperature2mMin []*float64 `json:"temperature_2m_min"`
	WeatherCode      []*int     `json:"weather_code"`
}

// APIErrorResponse is returned by Open-Meteo with 4xx answers
type APIErrorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}
